package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/Zachkp/folio/config"
)

const maxMessageLength = 5000

var (
	errMissingFields = errors.New("please fill in your name, email and message")
	errBadEmail      = errors.New("please enter a valid email address")
	errTooLong       = errors.New("message is too long")
	errSMTPDisabled  = errors.New("SMTP credentials not configured")
)

type ContactMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Emailed   bool      `json:"emailed"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *ContactMessage) validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Message = strings.TrimSpace(m.Message)

	if m.Name == "" || m.Email == "" || m.Message == "" {
		return errMissingFields
	}
	if strings.ContainsAny(m.Name+m.Email, "\r\n") {
		return errBadEmail
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return errBadEmail
	}
	if len(m.Message) > maxMessageLength {
		return errTooLong
	}
	return nil
}

func saveContactMessage(db *sql.DB, m *ContactMessage) error {
	m.CreatedAt = time.Now().UTC()
	res, err := db.Exec(`
		INSERT INTO contact_messages (name, email, message, emailed, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.Name, m.Email, m.Message, m.Emailed, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("save contact message: %w", err)
	}
	m.ID, _ = res.LastInsertId()
	return nil
}

func markEmailed(db *sql.DB, id int64) {
	if _, err := db.Exec(`UPDATE contact_messages SET emailed = 1 WHERE id = ?`, id); err != nil {
		log.Printf("Error marking message %d as emailed: %v", id, err)
	}
}

func listContactMessages(db *sql.DB, limit int) ([]ContactMessage, error) {
	rows, err := db.Query(`
		SELECT id, name, email, message, emailed, created_at
		FROM contact_messages
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []ContactMessage
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Emailed, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func deleteContactMessage(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func sendContactEmail(cfg config.Config, m ContactMessage) error {
	if !cfg.SMTPConfigured() {
		return errSMTPDisabled
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", m.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, m.Name, m.Email, m.Message)

	msg := []byte("To: " + cfg.ToEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.SMTPUser + "\r\n" +
		"Reply-To: " + m.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	err := smtp.SendMail(cfg.SMTPHost+":"+cfg.SMTPPort, auth, cfg.SMTPUser, []string{cfg.ToEmail}, msg)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	log.Printf("Email sent successfully from %s (%s)", m.Name, m.Email)
	return nil
}
