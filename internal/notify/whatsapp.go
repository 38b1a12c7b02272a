package notify

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fabianodasilvalira/tatystore-billing/internal/domain"
	"github.com/fabianodasilvalira/tatystore-billing/internal/service"
	"github.com/fabianodasilvalira/tatystore-billing/pkg/format"
)

// BuildCollectionNotice renders the WhatsApp collection message for a
// customer: one line per overdue installment with its remaining amount
// and due date, plus the aggregate overdue total. Amounts are rounded
// to 2 decimals before interpolation.
func BuildCollectionNotice(customer domain.Customer, installments []domain.Installment, now time.Time) string {
	var overdue []domain.Installment
	for _, inst := range service.OpenInstallments(installments) {
		if inst.IsOverdue() {
			overdue = append(overdue, inst)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Olá %s, tudo bem?\n", customer.Name)
	b.WriteString("Consta em nosso sistema as seguintes parcelas em atraso:\n\n")

	for _, inst := range overdue {
		fmt.Fprintf(&b, "- Parcela %d: %s, vencida em %s\n",
			inst.Number,
			format.BRL(format.Round2(inst.EffectiveRemaining())),
			format.Date(inst.DueDate),
		)
	}

	total := service.OverdueTotal(installments)
	fmt.Fprintf(&b, "\nTotal em atraso: %s\n", format.BRL(format.Round2(total)))
	fmt.Fprintf(&b, "Mensagem gerada em %s.", format.Date(now))

	return b.String()
}

// ShareLink builds the wa.me link that opens WhatsApp with the notice
// prefilled. Non-digit characters are stripped from the phone number.
func ShareLink(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits.String(), url.QueryEscape(message))
}
