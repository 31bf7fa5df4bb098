package invoice

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

var textTemplate = texttemplate.Must(texttemplate.New("invoice").Parse(
	`{{.RestaurantName}} — {{.RestaurantTagline}}
Invoice #{{.OrderID}}
Date: {{.Date}}

Customer: {{.CustomerName}}
{{- if .CustomerPhone}}
Phone: {{.CustomerPhone}}
{{- end}}
{{- if .CustomerAddress}}
Address: {{.CustomerAddress}}
{{- end}}
{{- if .Pickup}}
Pickup branch: {{.BranchName}}
{{- else}}
Method: delivery
{{- end}}

Items:
{{- range .Lines}}
  {{.Name}} x{{.Quantity}} @ {{.UnitPrice}} = {{.LineTotal}}
{{- end}}

Subtotal: {{.Subtotal}}
{{- if .HasDeliveryFee}}
Delivery fee: {{.DeliveryFee}}
{{- end}}
Total: {{.GrandTotal}}
{{- if .Notes}}

Notes: {{.Notes}}
{{- end}}

Thank you for choosing {{.RestaurantName}}.
`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("invoice").Parse(
	`<!DOCTYPE html>
<html dir="rtl">
<head>
<meta charset="utf-8">
<title>Invoice {{.OrderID}}</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; }
header { text-align: center; border-bottom: 1px solid #ccc; padding-bottom: 1rem; }
table { width: 100%; border-collapse: collapse; margin: 1rem 0; }
th, td { border-bottom: 1px solid #eee; padding: 0.4rem; text-align: center; }
.totals { margin-top: 1rem; }
.totals div { display: flex; justify-content: space-between; }
.grand { font-weight: bold; font-size: 1.1rem; }
footer { margin-top: 2rem; text-align: center; color: #666; border-top: 1px solid #ccc; padding-top: 1rem; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<header>
<h1>{{.RestaurantName}}</h1>
<p>{{.RestaurantTagline}}</p>
<p>Invoice #{{.OrderID}} — {{.Date}}</p>
</header>
<section>
<p><strong>Customer:</strong> {{.CustomerName}}</p>
{{if .CustomerPhone}}<p><strong>Phone:</strong> {{.CustomerPhone}}</p>{{end}}
{{if .CustomerAddress}}<p><strong>Address:</strong> {{.CustomerAddress}}</p>{{end}}
{{if .Pickup}}<p><strong>Pickup branch:</strong> {{.BranchName}}</p>{{else}}<p><strong>Method:</strong> delivery</p>{{end}}
</section>
<table>
<thead><tr><th>Item</th><th>Qty</th><th>Price</th><th>Total</th></tr></thead>
<tbody>
{{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.LineTotal}}</td></tr>
{{end}}</tbody>
</table>
<div class="totals">
<div><span>Subtotal</span><span>{{.Subtotal}}</span></div>
{{if .HasDeliveryFee}}<div><span>Delivery fee</span><span>{{.DeliveryFee}}</span></div>{{end}}
<div class="grand"><span>Total</span><span>{{.GrandTotal}}</span></div>
</div>
{{if .Notes}}<section><p><strong>Notes:</strong> {{.Notes}}</p></section>{{end}}
<footer>
<p>Thank you for choosing {{.RestaurantName}}.</p>
</footer>
</body>
</html>
`))
