package services

import (
	"fmt"
	"mime"
	"net/smtp"
	"os"
	"strings"

	"poolcalc/models"
	"poolcalc/utils"

	"golang.org/x/net/html"
)

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		// If parsing fails, return the original content
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			// Add line breaks for block elements
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "h4", "h5", "h6":
				text.WriteString("\n")
			case "li":
				text.WriteString("• ")
			case "table", "tr":
				text.WriteString("\n")
			case "td", "th":
				text.WriteString(" | ")
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}

	extractText(doc)

	result := text.String()
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	result = strings.TrimSpace(result)

	return result
}

// EmailService sends generated proposals to customers over SMTP.
type EmailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewEmailService reads the SMTP settings from the environment.
func NewEmailService() *EmailService {
	return &EmailService{
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
		username: os.Getenv("SMTP_USER"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
	}
}

// Configured reports whether the SMTP settings are complete enough to send.
func (es *EmailService) Configured() bool {
	return es.host != "" && es.port != "" && es.from != ""
}

// proposalHTML renders the proposal summary that goes into the email body.
func proposalHTML(proposal models.GenerateKPResponse, reference string) string {
	var b strings.Builder
	dims := proposal.PoolData.Dimensions

	b.WriteString("<h2>Коммерческое предложение " + reference + "</h2>")
	b.WriteString("<p>Уважаемый(ая) " + proposal.Customer.Name + "!</p>")
	b.WriteString("<p>Направляем расчет стоимости строительства бассейна " +
		fmt.Sprintf("%.0fx%.0fx%.0f мм", dims.Length, dims.Width, dims.Depth) +
		" (" + proposal.PoolData.Profile.Name + ").</p>")

	b.WriteString("<table>")
	b.WriteString("<tr><td>Оборудование</td><td>" + utils.FormatRub(proposal.Costs.EquipmentTotal) + "</td></tr>")
	b.WriteString("<tr><td>Материалы</td><td>" + utils.FormatRub(proposal.Costs.MaterialsTotal) + "</td></tr>")
	b.WriteString("<tr><td>Работы</td><td>" + utils.FormatRub(proposal.Costs.WorksTotal) + "</td></tr>")
	b.WriteString("<tr><td>ИТОГО</td><td>" + utils.FormatRub(proposal.Costs.Total) + "</td></tr>")
	b.WriteString("</table>")

	b.WriteString("<p>" + proposal.TotalInWords + "</p>")
	b.WriteString("<p>Дата предложения: " + proposal.GenerationDate + "</p>")
	return b.String()
}

// buildMessage assembles the raw SMTP message. Non-ASCII header text must
// be RFC 2047 encoded or some MTAs mangle it.
func (es *EmailService) buildMessage(to string, proposal models.GenerateKPResponse, reference string) []byte {
	subject := mime.QEncoding.Encode("utf-8", "Коммерческое предложение "+reference)
	body := convertHTMLToText(proposalHTML(proposal, reference))

	headers := []string{
		"From: " + es.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n")
}

// SendProposal emails a generated proposal to the customer. The HTML body
// is converted to plain text before sending.
func (es *EmailService) SendProposal(to string, proposal models.GenerateKPResponse, reference string) error {
	if !es.Configured() {
		return fmt.Errorf("smtp is not configured")
	}
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}

	msg := es.buildMessage(to, proposal, reference)

	var auth smtp.Auth
	if es.username != "" {
		auth = smtp.PlainAuth("", es.username, es.password, es.host)
	}

	return smtp.SendMail(es.host+":"+es.port, auth, es.from, []string{to}, msg)
}
