package smtp

import (
	"bufio"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeServer is a minimal SMTP peer that records the envelope and data of
// each session.
type fakeServer struct {
	ln net.Listener

	mu       sync.Mutex
	commands []string
	from     string
	rcpts    []string
	data     string
	rejectTo string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &fakeServer{ln: ln}
	t.Cleanup(func() { _ = ln.Close() })
	go s.serve()
	return s
}

func (s *fakeServer) port(t *testing.T) int {
	t.Helper()
	_, p, err := net.SplitHostPort(s.ln.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return n
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	reply := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }

	reply("220 fake.test ESMTP ready")
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		s.record(verb)

		switch verb {
		case "EHLO":
			reply("250-fake.test")
			reply("250 AUTH PLAIN LOGIN")
		case "HELO":
			reply("250 fake.test")
		case "AUTH":
			if strings.Contains(strings.ToUpper(line), "LOGIN") {
				reply("334 VXNlcm5hbWU6")
				if _, err := r.ReadString('\n'); err != nil {
					return
				}
				reply("334 UGFzc3dvcmQ6")
				if _, err := r.ReadString('\n'); err != nil {
					return
				}
			}
			reply("235 2.7.0 Authentication successful")
		case "MAIL":
			s.mu.Lock()
			s.from = line
			s.mu.Unlock()
			reply("250 OK")
		case "RCPT":
			s.mu.Lock()
			reject := s.rejectTo != "" && strings.Contains(line, s.rejectTo)
			if !reject {
				s.rcpts = append(s.rcpts, line)
			}
			s.mu.Unlock()
			if reject {
				reply("550 no such user")
				continue
			}
			reply("250 OK")
		case "DATA":
			reply("354 End data with <CR><LF>.<CR><LF>")
			var b strings.Builder
			for {
				dl, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if dl == ".\r\n" {
					break
				}
				b.WriteString(dl)
			}
			s.mu.Lock()
			s.data = b.String()
			s.mu.Unlock()
			reply("250 OK queued")
		case "RSET", "NOOP":
			reply("250 OK")
		case "QUIT":
			reply("221 Bye")
			return
		default:
			reply("502 command not implemented")
		}
	}
}

func (s *fakeServer) record(verb string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, verb)
}

func (s *fakeServer) snapshot() (commands []string, from string, rcpts []string, data string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...), s.from, append([]string(nil), s.rcpts...), s.data
}
