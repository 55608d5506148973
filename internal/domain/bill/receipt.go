package bill

import (
	"bytes"
	"text/template"
)

var receiptTemplate = template.Must(template.New("receipt").Parse(`
=================================================
                RENTAL BILL
=================================================
Date: {{.Date}}
Billing Period: {{.Period}}

Tenant Name: {{.Tenant}}
Apartment Number: {{.Apartment}}

BILL DETAILS:
-------------------------------------------------
Monthly Rent:             {{.Rent}}
Water Usage ({{.Usage}} m³):    {{.Water}}
-------------------------------------------------
Total Amount Due:         {{.Total}}

PAYMENT INSTRUCTIONS:
-------------------------------------------------
Please pay via M-Pesa:
Paybill Number: {{.Paybill}}
Account Number: {{.Account}}

Thank you for your prompt payment!
=================================================
`))

type receiptView struct {
	Date      string
	Period    string
	Tenant    string
	Apartment string
	Rent      string
	Usage     string
	Water     string
	Total     string
	Paybill   string
	Account   string
}

// Receipt renders the fixed-layout text receipt.
func (b Bill) Receipt() string {
	view := receiptView{
		Date:      b.IssuedAt.Format("02 January 2006"),
		Period:    b.Period(),
		Tenant:    b.Name,
		Apartment: b.Apartment,
		Rent:      b.Amount(b.Rent),
		Usage:     b.Usage(),
		Water:     b.Amount(b.WaterBill),
		Total:     b.Amount(b.Total),
		Paybill:   b.Tariff.PaybillNumber,
		Account:   b.AccountReference(),
	}

	var buf bytes.Buffer
	// The view holds only strings, execution cannot fail.
	_ = receiptTemplate.Execute(&buf, view)
	return buf.String()
}
