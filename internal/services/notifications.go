package services

import (
	"html/template"
	"strings"
	"time"

	"accidenta/internal/models"
)

// Notification email bodies, one per report class. The copy mirrors what the
// mobile app's contacts expect: accident reports carry the full description,
// urgency alerts only the location and a call to act immediately.

var accidentTemplate = template.Must(template.New("accidente").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #ff4444; color: white; padding: 20px; text-align: center; }
    .content { background: #f9f9f9; padding: 20px; border-radius: 0 0 5px 5px; }
    .alert { color: #ff4444; font-weight: bold; }
    .info { margin: 10px 0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🚨 Tuve un accidente 🚨</h1>
    </div>
    <div class="content">
      <p>Hola <strong>{{.ContactName}}</strong>,</p>

      <p class="alert">{{.UserName}} ha reportado un accidente.</p>

      <div class="info">
        <strong>Tipo de accidente:</strong> {{.Type}}<br>
        <strong>Ubicación:</strong> {{.Location}}<br>
        <strong>Descripción:</strong> {{.Description}}<br>
        <strong>Fecha y hora:</strong> {{.Timestamp}}
      </div>

      <p>Por favor, contacta al usuario para que pueda comunicarte sobre la situación.</p>

      <p><strong>Información de contacto:</strong><br>
      Teléfono: {{.UserPhone}}<br>
      DNI: {{.UserDNI}}</p>

      <hr>
      <p style="font-size: 12px; color: #666;">
        Este es un mensaje automático. Por favor, no responda a este email.
      </p>
    </div>
  </div>
</body>
</html>`))

var urgencyTemplate = template.Must(template.New("urgencia").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #ff4444; color: white; padding: 20px; text-align: center; }
    .content { background: #f9f9f9; padding: 20px; border-radius: 0 0 5px 5px; }
    .alert { color: #ff4444; font-weight: bold; }
    .info { margin: 10px 0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🚨 Tengo una urgencia 🚨</h1>
    </div>
    <div class="content">
      <p>Hola <strong>{{.ContactName}}</strong>,</p>

      <p class="alert">{{.UserName}} ha reportado una urgencia y necesita de tu ayuda lo antes posible.</p>

      <div class="info">
        <strong>Ubicación:</strong> {{.Location}}<br>
        <strong>Fecha y hora:</strong> {{.Timestamp}}
      </div>

      <p>Por favor, contacta al usuario inmediatamente para poder tomar las acciones necesarias.</p>
      <p>Se comparte la ubicación en tiempo real del usuario para que puedan llegar al lugar a la brevedad.</p>

      <p><strong>Información de contacto:</strong><br>
      Teléfono: {{.UserPhone}}<br>
      DNI: {{.UserDNI}}</p>

      <hr>
      <p style="font-size: 12px; color: #666;">
        Este es un mensaje automático. Por favor, no responda a este email.
      </p>
    </div>
  </div>
</body>
</html>`))

type notificationData struct {
	ContactName string
	UserName    string
	UserPhone   string
	UserDNI     string
	Type        string
	Location    string
	Description string
	Timestamp   string
}

func renderNotification(contact models.TrustedContact, report *models.Report, author *models.User) (string, error) {
	data := notificationData{
		ContactName: contact.Name,
		UserName:    author.FirstName,
		UserPhone:   author.Phone,
		UserDNI:     author.DNI,
		Type:        report.Type,
		Location:    report.Location,
		Description: report.Description,
		Timestamp:   time.Now().Format("02/01/2006 15:04:05"),
	}

	tmpl := accidentTemplate
	if report.Type == models.TypeUrgency {
		tmpl = urgencyTemplate
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
