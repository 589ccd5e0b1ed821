package smtp

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// fakeServer is a minimal plaintext SMTP server without AUTH or STARTTLS.
type fakeServer struct {
	ln   net.Listener
	mu   sync.Mutex
	rcpt []string
	data []string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{ln: ln}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

func (s *fakeServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
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
	tp := textproto.NewConn(conn)
	_ = tp.PrintfLine("220 localhost ESMTP")

	for {
		line, err := tp.ReadLine()
		if err != nil {
			return
		}
		cmd := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch cmd {
		case "EHLO", "HELO":
			_ = tp.PrintfLine("250 localhost")
		case "MAIL", "RSET", "NOOP":
			_ = tp.PrintfLine("250 OK")
		case "RCPT":
			s.mu.Lock()
			s.rcpt = append(s.rcpt, line)
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "DATA":
			_ = tp.PrintfLine("354 go ahead")
			body, err := tp.ReadDotBytes()
			if err != nil {
				return
			}
			s.mu.Lock()
			s.data = append(s.data, string(body))
			s.mu.Unlock()
			_ = tp.PrintfLine("250 OK")
		case "QUIT":
			_ = tp.PrintfLine("221 bye")
			return
		default:
			_ = tp.PrintfLine("502 not implemented")
		}
	}
}

func TestSender_VerifyAndSend(t *testing.T) {
	t.Parallel()

	srv := newFakeServer(t)
	s := New(Config{Host: "127.0.0.1", Port: srv.port(), SenderEmail: "team@example.com", SenderName: "Team"})

	require.NoError(t, s.Verify(context.Background()))

	err := s.Send(context.Background(), &mailer.Email{
		To:      []string{"alice@example.com"},
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
	})
	require.NoError(t, err)

	srv.mu.Lock()
	defer srv.mu.Unlock()
	require.Equal(t, []string{"RCPT TO:<alice@example.com>"}, srv.rcpt)
	require.Len(t, srv.data, 1)
	require.Contains(t, srv.data[0], "Subject: Hello")
	require.Contains(t, srv.data[0], "<team@example.com>")
}

func TestSender_Verify_Unreachable(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	s := New(Config{Host: "127.0.0.1", Port: port, Timeout: time.Second})
	require.ErrorIs(t, s.Verify(context.Background()), mailer.ErrVerifyFailed)
}

// silentServer accepts connections and never sends a greeting.
func silentServer(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})

	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestSender_Verify_StalledServerTimesOut(t *testing.T) {
	t.Parallel()

	s := New(Config{Host: "127.0.0.1", Port: silentServer(t), Timeout: 200 * time.Millisecond})

	start := time.Now()
	err := s.Verify(context.Background())
	require.ErrorIs(t, err, mailer.ErrVerifyFailed)
	require.Less(t, time.Since(start), 5*time.Second)
}

func TestSender_Send_CancelledWhileStalled(t *testing.T) {
	t.Parallel()

	s := New(Config{Host: "127.0.0.1", Port: silentServer(t), Timeout: time.Minute, SenderEmail: "team@example.com"})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(200*time.Millisecond, cancel)

	start := time.Now()
	err := s.Send(ctx, &mailer.Email{To: []string{"alice@example.com"}, Subject: "Hi", Text: "Hi"})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.Less(t, time.Since(start), 10*time.Second)
}

func TestSender_Verify_EmptyHost(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, New(Config{}).Verify(context.Background()), mailer.ErrVerifyFailed)
}

func TestSender_Send_Invalid(t *testing.T) {
	t.Parallel()

	err := New(Config{Host: "127.0.0.1"}).Send(context.Background(), &mailer.Email{Subject: "S", HTML: "x"})
	require.ErrorIs(t, err, mailer.ErrSendFailed)
	require.ErrorIs(t, err, mailer.ErrNoRecipient)
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	plain := New(Config{Username: "user@example.com"})
	require.Equal(t, 587, plain.config.Port)
	require.Equal(t, "user@example.com", plain.config.SenderEmail)

	secure := New(Config{Secure: true})
	require.Equal(t, 465, secure.config.Port)
}

func TestBuildMessage_WithAttachment(t *testing.T) {
	t.Parallel()

	email := &mailer.Email{
		To:      []string{"alice@example.com", "bob@example.com"},
		Subject: "Привет",
		HTML:    "<p>Hi</p>",
		Text:    "Hi",
		Headers: map[string]string{"X-Run": "r1"},
		Attachments: []mailer.Attachment{
			{Filename: "a.pdf", ContentType: "application/pdf", Content: bytes.Repeat([]byte("x"), 200)},
		},
	}

	msg := readMessage(t, email, "Team <team@example.com>")

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	require.Equal(t, "Привет", subject)
	require.Equal(t, "r1", msg.Header.Get("X-Run"))
	require.NotEmpty(t, msg.Header.Get("Message-ID"))

	from, err := mail.ParseAddress(msg.Header.Get("From"))
	require.NoError(t, err)
	require.Equal(t, "Team", from.Name)
	require.Equal(t, "team@example.com", from.Address)

	to, err := msg.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 2)
	require.Equal(t, "alice@example.com", to[0].Address)
	require.Equal(t, "bob@example.com", to[1].Address)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])

	first, err := mr.NextPart()
	require.NoError(t, err)
	altType, _, err := mime.ParseMediaType(first.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", altType)

	second, err := mr.NextPart()
	require.NoError(t, err)
	require.Equal(t, "a.pdf", second.FileName())
	require.Equal(t, "base64", second.Header.Get("Content-Transfer-Encoding"))

	_, err = mr.NextPart()
	require.ErrorIs(t, err, io.EOF)
}

func TestBuildMessage_HTMLOnly(t *testing.T) {
	t.Parallel()

	msg := readMessage(t, &mailer.Email{To: []string{"a@example.com"}, Subject: "S", HTML: "<b>x</b>"}, "a@example.com")

	mediaType, _, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "text/html", mediaType)
}

func TestBuildMessage_InvalidFrom(t *testing.T) {
	t.Parallel()

	_, err := buildMessage(&mailer.Email{To: []string{"a@example.com"}, Subject: "S", Text: "x"}, "not an address")
	require.Error(t, err)
}

func readMessage(t *testing.T, email *mailer.Email, from string) *mail.Message {
	t.Helper()

	m, err := buildMessage(email, from)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)

	msg, err := mail.ReadMessage(&buf)
	require.NoError(t, err)
	return msg
}
