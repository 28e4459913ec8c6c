//go:build linux

package eventloop

import (
	"golang.org/x/sys/unix"
)

// epollPoller is the primary readiness multiplexer (spec §4.1), a direct
// idiomatic-Go port of original_source/src/server.rs's
// libc::epoll_create1/epoll_ctl/epoll_wait reactor.
type epollPoller struct {
	epfd   int
	events []unix.EpollEvent
}

func newPoller() (poller, error) {
	epfd, err := unix.EpollCreate1(0)
	if err != nil {
		return nil, err
	}
	return &epollPoller{
		epfd:   epfd,
		events: make([]unix.EpollEvent, 1024),
	}, nil
}

func (p *epollPoller) add(fd int) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (p *epollPoller) remove(fd int) error {
	// Linux ignores the event argument on EPOLL_CTL_DEL, but older kernels
	// require a non-nil pointer.
	ev := unix.EpollEvent{}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, &ev)
}

func (p *epollPoller) wait() ([]int, error) {
	for {
		n, err := unix.EpollWait(p.epfd, p.events, -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}

		ready := make([]int, 0, n)
		for i := 0; i < n; i++ {
			ready = append(ready, int(p.events[i].Fd))
		}
		return ready, nil
	}
}

func (p *epollPoller) close() error {
	return unix.Close(p.epfd)
}
