package chat

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/sysprog/errors"
	"github.com/sabouaram/sysprog/ioutils/fileDescriptor"
)

// maxPeerFds is the open-file-descriptor ceiling Listen tries to raise
// the process to, leaving room for one fd per connected peer plus the
// listening socket and whatever else the process already holds open.
const maxPeerFds = 4096

// Server runs a single-threaded, poll-driven event loop over a
// listening socket and one socket per connected peer, broadcasting
// every completed frame to every peer other than its author.
//
// Grounded on chat_server.c: the fds/peers parallel-array structure
// there becomes a map keyed by file descriptor plus an insertion-order
// slice, since Go has no equivalent need for the original's raw
// pollfd array indexing trick.
type Server struct {
	mu sync.Mutex

	listenFd int
	started  bool

	peers []int // insertion order of peer fds, for deterministic iteration
	state map[int]*PeerState

	pending []Message // completed frames awaiting PopNext's distribution

	log *logrus.Entry
}

// NewServer builds an unstarted Server.
func NewServer(log *logrus.Entry) *Server {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Server{
		listenFd: -1,
		state:    make(map[int]*PeerState),
		log:      log.WithField("component", "chat.server"),
	}
}

// Listen binds INADDR_ANY:port and starts listening, non-blocking.
func (s *Server) Listen(port int) liberr.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted.Error(nil)
	}

	if cur, max, rerr := fileDescriptor.SystemFileDescriptor(maxPeerFds); rerr != nil {
		s.log.WithField("err", rerr).Debug("raising file descriptor limit failed")
	} else {
		s.log.WithField("current", cur).WithField("max", max).Debug("file descriptor limit")
	}

	fd, err := listenTCP(port)
	if err != nil {
		if err == unix.EADDRINUSE {
			return ErrPortBusy.Error(err)
		}
		return ErrSys.Error(err)
	}

	s.listenFd = fd
	s.started = true
	return nil
}

// Update runs one iteration of the poll loop. timeoutMs follows
// poll(2): 0 returns immediately, -1 blocks indefinitely, a positive
// value is a deadline in milliseconds. A deadline that elapses with no
// readiness surfaces as ErrTimeout.
func (s *Server) Update(timeoutMs int) liberr.Error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted.Error(nil)
	}

	fds := make([]unix.PollFd, 0, 1+len(s.peers))
	fds = append(fds, unix.PollFd{Fd: int32(s.listenFd), Events: unix.POLLIN})
	for _, fd := range s.peers {
		p := s.state[fd]
		events := int16(unix.POLLIN)
		if !p.Send.Empty() {
			events |= unix.POLLOUT
		}
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: events})
	}

	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil
		}
		return ErrSys.Error(err)
	}
	if n == 0 {
		return ErrTimeout.Error(nil)
	}

	if fds[0].Revents&unix.POLLIN != 0 {
		s.acceptOne()
	}

	var dead []int
	for i, fd := range s.peers {
		p := s.state[fd]
		revents := fds[i+1].Revents

		if revents&unix.POLLOUT != 0 {
			if !s.sendOne(p) {
				dead = append(dead, fd)
				continue
			}
		}
		if revents&unix.POLLIN != 0 {
			if !s.recvOne(p) {
				dead = append(dead, fd)
			}
		}
	}
	for _, fd := range dead {
		s.removePeer(fd)
	}

	return nil
}

func (s *Server) acceptOne() {
	fd, err := acceptNonblock(s.listenFd)
	if err != nil {
		s.log.WithField("err", err).Debug("accept failed")
		return
	}
	s.peers = append(s.peers, fd)
	s.state[fd] = &PeerState{fd: fd}
}

// sendOne drains one pending chunk from the peer's send queue.
// Returns false if the connection should be torn down.
func (s *Server) sendOne(p *PeerState) bool {
	data, ok := p.Send.Pending()
	if !ok {
		return true
	}

	n, err := unix.Write(p.fd, data)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return true
		}
		return false
	}
	p.Send.RecordSent(n)
	return true
}

// recvOne performs one non-blocking read and folds it into the peer's
// receive buffer, completing at most one frame per call. Returns false
// if the connection should be torn down.
func (s *Server) recvOne(p *PeerState) bool {
	buf, _ := p.Recv.NeedsBytes()
	n, err := unix.Read(p.fd, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return true
		}
		return false
	}
	if n == 0 {
		return false
	}

	p.Recv.RecordRead(n)
	if p.Recv.Ready() {
		payload := trimToken(p.Recv.Take())
		if len(payload) > 0 {
			s.pending = append(s.pending, Message{AuthorID: p.fd, Text: string(payload)})
		}
	}
	return true
}

func (s *Server) removePeer(fd int) {
	if p, ok := s.state[fd]; ok {
		_ = unix.Close(p.fd)
		delete(s.state, fd)
	}
	for i, f := range s.peers {
		if f == fd {
			s.peers = append(s.peers[:i], s.peers[i+1:]...)
			break
		}
	}
}

// PopNext returns the oldest pending message and, as a side effect,
// enqueues a framed copy of it into every other peer's send queue
// (this is where broadcast fan-out actually happens, matching the
// original pop_next contract).
func (s *Server) PopNext() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return Message{}, false
	}
	m := s.pending[0]
	s.pending = s.pending[1:]

	for _, fd := range s.peers {
		if fd == m.AuthorID {
			continue
		}
		s.state[fd].Send.EnqueueFramed([]byte(m.Text))
	}

	return m, true
}

// Feed injects text as if it had arrived, verbatim, from a peer with
// the given author id, broadcasting it on the next PopNext. It exists
// for tests and for driving the server programmatically without a real
// socket, mirroring the coursework's optional server_feed.
func (s *Server) Feed(authorID int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	trimmed := trimToken([]byte(text))
	if len(trimmed) == 0 {
		return
	}
	s.pending = append(s.pending, Message{AuthorID: authorID, Text: string(trimmed)})
}

// GetEvents reports the readiness bitmask the caller should poll for
// on behalf of the peer identified by fd.
func (s *Server) GetEvents(fd int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state[fd]
	if !ok {
		return 0
	}
	events := EventInput
	if !p.Send.Empty() {
		events |= EventOutput
	}
	return events
}

// PeerCount reports how many peers are currently connected.
func (s *Server) PeerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.peers)
}

// Port returns the port the listening socket is bound to, useful when
// Listen was called with port 0 to let the kernel choose one.
func (s *Server) Port() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sa, err := unix.Getsockname(s.listenFd)
	if err != nil {
		return 0, err
	}
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		return in4.Port, nil
	}
	return 0, nil
}

// Close tears down the listening socket and every connected peer.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fd := range s.peers {
		_ = unix.Close(fd)
	}
	s.peers = nil
	s.state = make(map[int]*PeerState)
	if s.listenFd >= 0 {
		_ = unix.Close(s.listenFd)
		s.listenFd = -1
	}
	s.started = false
}
