package service

import (
	"strings"

	"github.com/jamaney/card-backend/internal/models"
)

// RenderVCard serializes a profile as a vCard 3.0 document with CRLF line
// endings. Name, job and phone are always present; the remaining contact
// fields are emitted only when set.
func RenderVCard(p *models.Profile) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + escapeVCard(p.Name),
		"TITLE:" + escapeVCard(p.Job),
		"TEL;TYPE=CELL:" + escapeVCard(p.Phone),
	}

	if p.Company != "" {
		lines = append(lines, "ORG:"+escapeVCard(p.Company))
	}
	if p.Email != "" {
		lines = append(lines, "EMAIL:"+escapeVCard(p.Email))
	}
	if p.Website != "" {
		lines = append(lines, "URL:"+escapeVCard(p.Website))
	}
	if p.Address != "" {
		lines = append(lines, "ADR:;;"+escapeVCard(p.Address)+";;;;")
	}

	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// VCardFilename is the suggested download name for a profile's vCard.
func VCardFilename(p *models.Profile) string {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		name = "contact"
	}
	return name + ".vcf"
}

func escapeVCard(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"\n", "\\n",
		";", "\\;",
		",", "\\,",
	)
	return r.Replace(s)
}
