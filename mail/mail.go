package mail

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	helper "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/Mredman48/F1-standings/config"
)

// SendFailureReport emails a short report when a job dies on its fatal
// path. Mail is best-effort: callers log the returned error and exit
// regardless.
func SendFailureReport(cfg *config.Config, job string, runErr error) error {
	if !cfg.MailEnabled() {
		return nil
	}

	subject := fmt.Sprintf("f1snap job failed: %s", job)
	plainTextContent := fmt.Sprintf(
		"Job: %s\nTime: %s\nError: %v\n",
		job, time.Now().UTC().Format(time.RFC3339), runErr)
	htmlContent := fmt.Sprintf(`
        <html>
        <body>
            <h2>Snapshot job failed</h2>
            <p><b>Job:</b> %s</p>
            <p><b>Time:</b> %s</p>
            <p><b>Error:</b> %v</p>
        </body>
        </html>
    `, job, time.Now().UTC().Format(time.RFC3339), runErr)

	from := helper.NewEmail("f1snap", cfg.ReportFrom)
	to := helper.NewEmail("", cfg.ReportTo)
	message := helper.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)
	response, err := client.Send(message)

	if err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: %d - %s", response.StatusCode, response.Body)
	}

	return nil
}
