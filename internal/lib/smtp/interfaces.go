// Package smtp открывает аутентифицированные STARTTLS-сессии с почтовым сервером.
package smtp

import "io"

// Client сессия с SMTP-сервером.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
