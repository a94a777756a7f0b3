package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
)

const dialTimeout = 10 * time.Second

// Settings параметры подключения к почтовому серверу.
type Settings struct {
	Host     string
	Port     string
	User     string
	Password string
	From     string
	// Insecure отключает STARTTLS и авторизацию. Только для локальных
	// серверов-ловушек вроде MailHog.
	Insecure bool
}

// Transport реализует SMTP транспорт для отправки писем.
type Transport struct {
	settings Settings
	log      *slog.Logger
}

// smtpClientWrapper обертка для *smtp.Client, реализующая интерфейс Client.
type smtpClientWrapper struct {
	client *smtp.Client
}

func (w *smtpClientWrapper) Mail(from string) error {
	return w.client.Mail(from)
}

func (w *smtpClientWrapper) Rcpt(to string) error {
	return w.client.Rcpt(to)
}

func (w *smtpClientWrapper) Data() (io.WriteCloser, error) {
	return w.client.Data()
}

func (w *smtpClientWrapper) Quit() error {
	return w.client.Quit()
}

func (w *smtpClientWrapper) Close() error {
	return w.client.Close()
}

// NewTransport создает новый экземпляр Transport.
func NewTransport(settings Settings, log *slog.Logger) *Transport {
	return &Transport{settings: settings, log: log}
}

// Connect устанавливает соединение с SMTP сервером.
func (t *Transport) Connect() (Client, error) {
	const op = "smtp.Connect"

	host := t.settings.Host
	conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, t.settings.Port), dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("%s: dial: %w", op, err)
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			t.log.Warn("failed to close connection", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if t.settings.Insecure {
		return &smtpClientWrapper{client: client}, nil
	}

	fail := func(err error) (Client, error) {
		if closeErr := client.Close(); closeErr != nil {
			t.log.Warn("failed to close client", sl.Err(closeErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		return fail(fmt.Errorf("server does not support STARTTLS"))
	}
	if err = client.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
		return fail(fmt.Errorf("start tls: %w", err))
	}
	if err = client.Auth(smtp.PlainAuth("", t.settings.User, t.settings.Password, host)); err != nil {
		return fail(fmt.Errorf("auth: %w", err))
	}

	return &smtpClientWrapper{client: client}, nil
}

// Sender адрес отправителя. Без From используется логин.
func (t *Transport) Sender() string {
	if t.settings.From != "" {
		return t.settings.From
	}
	return t.settings.User
}
