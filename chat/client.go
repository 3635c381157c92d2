package chat

import (
	"bytes"
	"net"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	liberr "github.com/sabouaram/sysprog/errors"
)

// Client holds one connection to a Server: its own send queue and
// receive buffer, a queue of messages popped off the wire, and an
// input accumulator that newline-delimits whatever Feed is handed.
type Client struct {
	mu sync.Mutex

	Username string

	fd        int
	connected bool

	send SendQueue
	recv ReceiveBuffer

	inbox []Message
	input []byte

	log *logrus.Entry
}

// NewClient builds an unconnected Client. username is carried purely
// because the original struct has the field (see PeerState); the
// protocol never transmits it.
func NewClient(username string, log *logrus.Entry) *Client {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		Username: username,
		fd:       -1,
		log:      log.WithField("component", "chat.client"),
	}
}

// Connect resolves "host:port" and opens a non-blocking TCP connection.
func (c *Client) Connect(hostport string) liberr.Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		return ErrAlreadyStarted.Error(nil)
	}

	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return ErrInvalidArgument.Error(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ErrInvalidArgument.Error(err)
	}

	ip, err := net.ResolveIPAddr("ip4", host)
	if err != nil || ip.IP.To4() == nil {
		return ErrNoAddr.Error(err)
	}
	var ip4 [4]byte
	copy(ip4[:], ip.IP.To4())

	fd, derr := dialTCP(ip4, port)
	if derr != nil {
		return ErrSys.Error(derr)
	}

	c.fd = fd
	c.connected = true
	return nil
}

// Update runs one poll iteration over the client's single socket.
func (c *Client) Update(timeoutMs int) liberr.Error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return ErrNotStarted.Error(nil)
	}

	events := int16(unix.POLLIN)
	if !c.send.Empty() {
		events |= unix.POLLOUT
	}
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: events}}

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

	revents := fds[0].Revents
	if revents&unix.POLLOUT != 0 {
		if !c.sendOne() {
			c.teardown()
			return ErrSys.Error(nil)
		}
	}
	if revents&unix.POLLIN != 0 {
		if !c.recvOne() {
			c.teardown()
			return ErrSys.Error(nil)
		}
	}
	return nil
}

func (c *Client) sendOne() bool {
	data, ok := c.send.Pending()
	if !ok {
		return true
	}
	n, err := unix.Write(c.fd, data)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return true
		}
		return false
	}
	c.send.RecordSent(n)
	return true
}

func (c *Client) recvOne() bool {
	buf, _ := c.recv.NeedsBytes()
	n, err := unix.Read(c.fd, buf)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return true
		}
		return false
	}
	if n == 0 {
		return false
	}

	c.recv.RecordRead(n)
	if c.recv.Ready() {
		payload := trimToken(c.recv.Take())
		if len(payload) > 0 {
			c.inbox = append(c.inbox, Message{Text: string(payload)})
		}
	}
	return true
}

func (c *Client) teardown() {
	if c.fd >= 0 {
		_ = unix.Close(c.fd)
	}
	c.fd = -1
	c.connected = false
}

// PopNext dequeues the oldest message this client has received.
func (c *Client) PopNext() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inbox) == 0 {
		return Message{}, false
	}
	m := c.inbox[0]
	c.inbox = c.inbox[1:]
	return m, true
}

// Feed accepts an arbitrary chunk of user input, newline-delimiting it
// into tokens: every completed, non-blank token is trimmed, framed and
// pushed onto the send queue; an incomplete trailing token is held
// back until more input completes it.
func (c *Client) Feed(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = append(c.input, data...)
	for {
		idx := bytes.IndexByte(c.input, '\n')
		if idx < 0 {
			break
		}
		token := trimToken(c.input[:idx])
		c.input = c.input[idx+1:]
		if len(token) > 0 {
			c.send.EnqueueFramed(token)
		}
	}
}

// GetEvents reports the readiness bitmask the caller should poll for.
func (c *Client) GetEvents() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := EventInput
	if !c.send.Empty() {
		events |= EventOutput
	}
	return events
}

// Close tears down the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardown()
}
