// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package delivery

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Dialer é o subconjunto de *gomail.Dialer usado pelo SMTPNotifier.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier envia o relatório por um servidor SMTP qualquer.
type SMTPNotifier struct {
	dialer     Dialer
	from       string
	recipients []string
}

func NewSMTPNotifier(dialer Dialer, from string, recipients ...string) *SMTPNotifier {
	return &SMTPNotifier{dialer: dialer, from: from, recipients: recipients}
}

// NewSMTPDialer cria o Dialer padrão do gomail.
func NewSMTPDialer(host string, port int, username, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, username, password)
}

func (n *SMTPNotifier) Notify(ctx context.Context, subject, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.recipients...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar e-mail via SMTP: %w", err)
	}

	zerolog.Ctx(ctx).Info().Strs("to", n.recipients).Msg("email sent via smtp")
	return nil
}
