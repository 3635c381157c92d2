package chat

import (
	"golang.org/x/sys/unix"
)

// Event bitmask values returned by GetEvents, mirroring the POLLIN /
// POLLOUT readiness the coursework's server_get_events /
// client_get_events expose.
const (
	EventInput  = 1 << 0
	EventOutput = 1 << 1
)

func setNonblock(fd int) error {
	return unix.SetNonblock(fd, true)
}

// listenTCP creates a non-blocking listening socket bound to
// INADDR_ANY:port.
func listenTCP(port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, err
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	addr := &unix.SockaddrInet4{Port: port}
	if err := unix.Bind(fd, addr); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	if err := unix.Listen(fd, 16); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	if err := setNonblock(fd); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

func acceptNonblock(listenFd int) (int, error) {
	fd, _, err := unix.Accept4(listenFd, unix.SOCK_NONBLOCK)
	if err != nil {
		return -1, err
	}
	return fd, nil
}

// dialTCP connects (possibly asynchronously, given the socket is made
// non-blocking before connect) to host:port.
func dialTCP(ip4 [4]byte, port int) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return -1, err
	}
	if err := setNonblock(fd); err != nil {
		_ = unix.Close(fd)
		return -1, err
	}

	addr := &unix.SockaddrInet4{Port: port, Addr: ip4}
	err = unix.Connect(fd, addr)
	if err != nil && err != unix.EINPROGRESS {
		_ = unix.Close(fd)
		return -1, err
	}
	return fd, nil
}
