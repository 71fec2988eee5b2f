// Package email renders the transactional emails the site sends.
package email

import (
	"bytes"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

// Rendered is one email in both of its bodies.
type Rendered struct {
	HTML string
	Text string
}

// CollabInvite is the collab request an invitee is pointed at.
type CollabInvite struct {
	ID                   string
	Field                string
	Subject              string
	ProjectImpactSummary string
	ExpectedTasks        string
	ExpectedTime         string
	Offer                string
	AdditionalInfo       string
}

const InviteSubject = "You've been invited to collaborate on a research project"

type inviteView struct {
	CollabInvite
	Link string
}

var inviteHTML = htmltemplate.Must(htmltemplate.New("invite.html").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Research collaboration invite</title></head>
<body style="font-family: Helvetica, Arial, sans-serif; color: #222;">
  <h2>You've been invited to collaborate!</h2>
  <p>A researcher would like your help with the following project.</p>
  <table cellpadding="6">
    <tr><td><b>Field</b></td><td>{{.Field}}</td></tr>
    <tr><td><b>Subject</b></td><td>{{.Subject}}</td></tr>
    <tr><td><b>Project impact summary</b></td><td>{{.ProjectImpactSummary}}</td></tr>
    <tr><td><b>Expected tasks</b></td><td>{{.ExpectedTasks}}</td></tr>
    <tr><td><b>Expected time</b></td><td>{{.ExpectedTime}}</td></tr>
    <tr><td><b>Offer</b></td><td>{{.Offer}}</td></tr>
{{- if .AdditionalInfo}}
    <tr><td><b>Additional info</b></td><td>{{.AdditionalInfo}}</td></tr>
{{- end}}
  </table>
  <p><a href="{{.Link}}">View the collaboration request</a></p>
</body>
</html>
`))

var inviteText = texttemplate.Must(texttemplate.New("invite.txt").Parse(`You've been invited to collaborate!

A researcher would like your help with the following project.

Field: {{.Field}}
Subject: {{.Subject}}
Project impact summary: {{.ProjectImpactSummary}}
Expected tasks: {{.ExpectedTasks}}
Expected time: {{.ExpectedTime}}
Offer: {{.Offer}}
{{- if .AdditionalInfo}}
Additional info: {{.AdditionalInfo}}
{{- end}}

View the collaboration request: {{.Link}}
`))

// InviteLink is where the web client shows a collab request.
func InviteLink(origin, id string) string {
	return strings.TrimRight(origin, "/") + "/grad-collab/#/browse/" + id
}

// RenderCollabInvite builds the invitation email for inv. User supplied
// fields are HTML-escaped in the HTML body.
func RenderCollabInvite(origin string, inv CollabInvite) (Rendered, error) {
	view := inviteView{CollabInvite: inv, Link: InviteLink(origin, inv.ID)}

	var html, text bytes.Buffer
	if err := inviteHTML.Execute(&html, view); err != nil {
		return Rendered{}, err
	}
	if err := inviteText.Execute(&text, view); err != nil {
		return Rendered{}, err
	}
	return Rendered{HTML: html.String(), Text: text.String()}, nil
}
