//go:build !linux

package eventloop

import (
	"golang.org/x/sys/unix"
)

// pollPoller is the non-Linux readiness multiplexer: a single unix.Poll
// call per tick over every registered fd. It is a correct but degraded
// substitute for epoll's O(ready) wakeup — O(registered) per tick instead
// of O(ready) — documented as a non-Linux fallback rather than built out
// further, since no repo in the retrieval pack provides a kqueue binding
// to ground a darwin-native multiplexer on.
type pollPoller struct {
	fds map[int]struct{}
}

func newPoller() (poller, error) {
	return &pollPoller{fds: make(map[int]struct{})}, nil
}

func (p *pollPoller) add(fd int) error {
	p.fds[fd] = struct{}{}
	return nil
}

func (p *pollPoller) remove(fd int) error {
	delete(p.fds, fd)
	return nil
}

func (p *pollPoller) wait() ([]int, error) {
	fds := make([]unix.PollFd, 0, len(p.fds))
	for fd := range p.fds {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}

	for {
		_, err := unix.Poll(fds, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	ready := make([]int, 0, len(fds))
	for _, pfd := range fds {
		if pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			ready = append(ready, int(pfd.Fd))
		}
	}
	return ready, nil
}

func (p *pollPoller) close() error {
	return nil
}
