package web

import (
	"fmt"
	"html/template"
	"io"

	"github.com/billed-app/billed-web/internal/models"
)

// View icons highlighted in the vertical navbar. The active one
// carries the active-icon class in the rendered layout.
const (
	IconWindow = "icon-window"
	IconMail   = "icon-mail"
)

// BillRow is one rendered line of the bill list.
type BillRow struct {
	Type    string
	Name    string
	Date    string // display form, raw date when formatting fails
	RawDate string // YYYY-MM-DD, drives the sort
	Amount  int
	Status  string
	FileURL string
}

// BillsPage is the three-state view model of the bill list: loading,
// error, or rows. Error wins over rows; loading wins over both.
type BillsPage struct {
	Loading bool
	Error   string
	Rows    []BillRow
}

// NewBillPage is the view model of the creation form. Values echoes
// the user's field state across re-renders; File carries the uploaded
// attachment reference once CreateFile has succeeded.
type NewBillPage struct {
	Types   []string
	Values  FormValues
	File    UploadedFile
	Message string
}

// FormValues is the field state of the new-bill form.
type FormValues struct {
	Type       string
	Name       string
	Date       string
	Amount     string
	Vat        string
	Pct        string
	Commentary string
}

// UploadedFile is the captured result of a successful receipt upload.
type UploadedFile struct {
	URL  string
	Key  string
	Name string
}

// Set reports whether an upload has been captured. Submitting without
// one is an invalid precondition.
func (f UploadedFile) Set() bool {
	return f.URL != "" && f.Key != ""
}

var pageTemplate = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Billed</title>
</head>
<body>
<div class="layout">
<nav class="vertical-navbar">
<a href="/employee/bills"><div id="layout-icon1" data-testid="icon-window" class="layout-icon{{if eq .ActiveIcon "icon-window"}} active-icon{{end}}">&#128196;</div></a>
<a href="/employee/bill/new"><div id="layout-icon2" data-testid="icon-mail" class="layout-icon{{if eq .ActiveIcon "icon-mail"}} active-icon{{end}}">&#9993;</div></a>
</nav>
<div class="content">
{{block "content" .Content}}{{end}}
</div>
</div>
</body>
</html>
{{define "bills"}}
<div class="content-header">
<div class="content-title">Mes notes de frais</div>
<a href="/employee/bill/new" class="btn btn-primary" data-testid="btn-new-bill">Nouvelle note de frais</a>
</div>
{{if .Loading}}
<div data-testid="loading-message">Loading...</div>
{{else if .Error}}
<div class="error-page">
<div class="error-title">Erreur</div>
<div data-testid="error-message">{{.Error}}</div>
</div>
{{else}}
<table id="example" class="table">
<thead><tr><th>Type</th><th>Nom</th><th>Date</th><th>Montant</th><th>Statut</th><th>Actions</th></tr></thead>
<tbody data-testid="tbody">
{{range .Rows}}<tr>
<td>{{.Type}}</td>
<td>{{.Name}}</td>
<td data-testid="bill-date">{{.Date}}</td>
<td>{{.Amount}} &euro;</td>
<td data-testid="bill-status">{{.Status}}</td>
<td><div class="icon-eye" data-testid="icon-eye" data-bill-url="{{.FileURL}}">&#128065;</div></td>
</tr>
{{end}}</tbody>
</table>
<div class="modal" id="modaleFile" data-testid="modaleFile"><div class="modal-body"></div></div>
<script>
document.querySelectorAll('[data-testid="icon-eye"]').forEach(function (icon) {
  icon.addEventListener('click', function () {
    var modal = document.getElementById('modaleFile');
    modal.querySelector('.modal-body').innerHTML =
      '<img src="' + icon.getAttribute('data-bill-url') + '" alt="Bill">';
    modal.classList.add('show');
  });
});
</script>
{{end}}
{{end}}
{{define "newbill"}}
<div class="content-header">
<div class="content-title">Envoyer une note de frais</div>
</div>
{{if .Message}}<div data-testid="form-message">{{.Message}}</div>{{end}}
<form data-testid="form-new-bill" action="/employee/bill/new" method="post" enctype="multipart/form-data">
<label for="expense-type">Type de dépense</label>
<select id="expense-type" name="expense-type" data-testid="expense-type">
{{$selected := .Values.Type}}{{range .Types}}<option value="{{.}}"{{if eq . $selected}} selected{{end}}>{{.}}</option>
{{end}}</select>
<label for="expense-name">Nom de la dépense</label>
<input id="expense-name" name="expense-name" type="text" data-testid="expense-name" placeholder="Vol Paris Londres" value="{{.Values.Name}}">
<label for="datepicker">Date</label>
<input id="datepicker" name="datepicker" type="date" data-testid="datepicker" required value="{{.Values.Date}}">
<label for="amount">Montant TTC</label>
<input id="amount" name="amount" type="number" data-testid="amount" placeholder="348" required value="{{.Values.Amount}}">
<label for="vat">TVA</label>
<input id="vat" name="vat" type="number" data-testid="vat" placeholder="70" value="{{.Values.Vat}}">
<input id="pct" name="pct" type="number" data-testid="pct" placeholder="20" value="{{.Values.Pct}}">
<label for="commentary">Commentaire</label>
<textarea id="commentary" name="commentary" data-testid="commentary">{{.Values.Commentary}}</textarea>
<label for="file">Justificatif</label>
<input id="file" name="file" type="file" data-testid="file">
<button type="submit" formaction="/employee/bill/new/file" formmethod="post">Joindre</button>
{{if .File.Set}}<div data-testid="file-name">{{.File.Name}}</div>{{end}}
<input type="hidden" name="file-url" value="{{.File.URL}}">
<input type="hidden" name="file-key" value="{{.File.Key}}">
<input type="hidden" name="file-name" value="{{.File.Name}}">
<button type="submit" id="btn-send-bill" class="btn btn-primary">Envoyer</button>
</form>
{{end}}
{{define "login"}}
<div class="page-login">
<div class="content-title">Billed</div>
<form data-testid="form-employee">
<label for="employee-email">Email</label>
<input id="employee-email" name="email" type="email" data-testid="employee-email-input">
<label for="employee-password">Mot de passe</label>
<input id="employee-password" name="password" type="password" data-testid="employee-password-input">
<button type="submit" data-testid="employee-login-button" disabled>Se connecter</button>
</form>
<p>La connexion est gérée par le service d'authentification.</p>
</div>
{{end}}`))

// page is the data handed to the layout template.
type page struct {
	ActiveIcon string
	Content    any
}

func renderPage(w io.Writer, content string, activeIcon string, data any) error {
	tmpl := template.Must(pageTemplate.Clone())
	// Rebind "content" to the requested fragment.
	if _, err := tmpl.Parse(fmt.Sprintf(`{{define "content"}}{{template %q .}}{{end}}`, content)); err != nil {
		return fmt.Errorf("failed to bind %s view: %w", content, err)
	}
	if err := tmpl.ExecuteTemplate(w, "layout", page{ActiveIcon: activeIcon, Content: data}); err != nil {
		return fmt.Errorf("failed to render %s view: %w", content, err)
	}
	return nil
}

// RenderBills writes the bill-list page.
func RenderBills(w io.Writer, data BillsPage) error {
	return renderPage(w, "bills", IconWindow, data)
}

// RenderNewBill writes the creation-form page.
func RenderNewBill(w io.Writer, data NewBillPage) error {
	if data.Types == nil {
		data.Types = models.ExpenseTypes
	}
	return renderPage(w, "newbill", IconMail, data)
}

// RenderLogin writes the login fallback page.
func RenderLogin(w io.Writer) error {
	return renderPage(w, "login", "", nil)
}
