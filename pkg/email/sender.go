package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"sync"
)

// TemplatesDir is where GenerateBodyFromHTML looks for template files.
var TemplatesDir = "./templates"

var (
	templatesMu sync.RWMutex
	templates   = make(map[string]*template.Template)
)

type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(input SendEmailInput) error
}

// GenerateBodyFromHTML renders templateFileName from TemplatesDir into Body.
// Parsed templates are cached by path.
func (e *SendEmailInput) GenerateBodyFromHTML(templateFileName string, data interface{}) error {
	t, err := loadTemplate(filepath.Join(TemplatesDir, templateFileName))
	if err != nil {
		return fmt.Errorf("parse file failed: %w", err)
	}

	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return fmt.Errorf("email data injection failed: %w", err)
	}

	e.Body = buf.String()

	return nil
}

func loadTemplate(path string) (*template.Template, error) {
	templatesMu.RLock()
	t, ok := templates[path]
	templatesMu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := template.ParseFiles(path)
	if err != nil {
		return nil, err
	}

	templatesMu.Lock()
	templates[path] = t
	templatesMu.Unlock()

	return t, nil
}

func (e *SendEmailInput) Validate() error {
	if e.To == "" {
		return errors.New("empty to")
	}

	if e.Subject == "" || e.Body == "" {
		return errors.New("empty subject/body")
	}

	if !IsEmailValid(e.To) {
		return errors.New("invalid to email")
	}

	return nil
}
