package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/Amantay09/league-system/config"
	"github.com/Amantay09/league-system/models"
)

// EmailSender delivers tournament notifications. Implementations must
// be safe for concurrent use.
type EmailSender interface {
	SendRegistrationDecision(ctx context.Context, to, teamName, tournamentName string, decision models.RegistrationStatus) error
	SendFixturesPublished(ctx context.Context, to, tournamentName string, fixtureCount int) error
}

type smtpEmailService struct {
	cfg *config.Config
}

func NewEmailService(cfg *config.Config) EmailSender {
	return &smtpEmailService{cfg: cfg}
}

var registrationDecisionTmpl = template.Must(template.New("registration_decision").Parse(`
<p>Hello,</p>
<p>Your team <b>{{.TeamName}}</b> has been <b>{{.Decision}}</b> for the tournament <b>{{.TournamentName}}</b>.</p>
{{if .Approved}}<p>See you on the pitch!</p>{{end}}
`))

var fixturesPublishedTmpl = template.Must(template.New("fixtures_published").Parse(`
<p>Hello,</p>
<p>The schedule for <b>{{.TournamentName}}</b> is out: {{.FixtureCount}} fixtures have been published.</p>
<p>Log in to see your team's matches.</p>
`))

func (s *smtpEmailService) SendRegistrationDecision(ctx context.Context, to, teamName, tournamentName string, decision models.RegistrationStatus) error {
	var body bytes.Buffer
	err := registrationDecisionTmpl.Execute(&body, map[string]interface{}{
		"TeamName":       teamName,
		"TournamentName": tournamentName,
		"Decision":       string(decision),
		"Approved":       decision == models.RegistrationStatusApproved,
	})
	if err != nil {
		return fmt.Errorf("failed to render registration email: %w", err)
	}
	subject := fmt.Sprintf("Registration %s: %s", decision, tournamentName)
	return s.send(ctx, []string{to}, subject, body.String())
}

func (s *smtpEmailService) SendFixturesPublished(ctx context.Context, to, tournamentName string, fixtureCount int) error {
	var body bytes.Buffer
	err := fixturesPublishedTmpl.Execute(&body, map[string]interface{}{
		"TournamentName": tournamentName,
		"FixtureCount":   fixtureCount,
	})
	if err != nil {
		return fmt.Errorf("failed to render fixtures email: %w", err)
	}
	subject := fmt.Sprintf("Schedule published: %s", tournamentName)
	return s.send(ctx, []string{to}, subject, body.String())
}

func (s *smtpEmailService) send(ctx context.Context, to []string, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	tlsConfig := &tls.Config{
		ServerName: s.cfg.SMTPHost,
	}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Implicit TLS.
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("smtp tls dial: %w", err)
		}
		defer conn.Close()
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			return fmt.Errorf("smtp client: %w", err)
		}
	} else {
		// STARTTLS, typically port 587.
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("smtp dial: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsConfig); err != nil {
			client.Close()
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt to %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return nil
}
