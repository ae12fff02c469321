package email

import (
	"bytes"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Message is one composed plain-text email with a single recipient.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
	Date    time.Time
}

var headerSanitizer = strings.NewReplacer("\r", " ", "\n", " ")

// Bytes renders the message as an RFC 5322 document: headers, a blank
// line, and the body as quoted-printable UTF-8 with CRLF line endings.
func (m Message) Bytes() ([]byte, error) {
	var buf bytes.Buffer

	writeHeader(&buf, "From", m.From)
	writeHeader(&buf, "To", m.To)
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", headerSanitizer.Replace(m.Subject)))
	writeHeader(&buf, "Date", m.Date.Format(time.RFC1123Z))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", `text/plain; charset="utf-8"`)
	writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(m.Body)); err != nil {
		return nil, errors.Wrap(err, "encoding message body")
	}
	if err := qp.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding message body")
	}

	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(headerSanitizer.Replace(value))
	buf.WriteString("\r\n")
}
