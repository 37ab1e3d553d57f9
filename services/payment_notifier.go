// services/payment_notifier.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"crmconsole-backend/models"
	"crmconsole-backend/store"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// PaymentNotificationService sends a WhatsApp message when a member's
// payment is approved and runs a daily sweep over still-pending payments.
// It implements screens.PaymentNotifier.
type PaymentNotificationService struct {
	store  store.Store
	client *twilio.RestClient
	from   string
}

func NewPaymentNotificationService(st store.Store) *PaymentNotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &PaymentNotificationService{
		store: st,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
		from: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}
}

// Enabled reports whether the Twilio credentials are configured.
func (s *PaymentNotificationService) Enabled() bool {
	return os.Getenv("TWILIO_ACCOUNT_SID") != "" && os.Getenv("TWILIO_AUTH_TOKEN") != "" && s.from != ""
}

// PaymentApproved messages the member that their access is live. Send
// failures are logged; the approval itself already succeeded and must not
// be affected.
func (s *PaymentNotificationService) PaymentApproved(profile models.Profile) {
	if profile.Whatsapp == nil || *profile.Whatsapp == "" {
		return
	}
	number := *profile.Whatsapp
	if !strings.HasPrefix(number, "+") {
		log.Printf("whatsapp de %s fora do formato E.164, mensagem não enviada", profile.Email)
		return
	}

	name := profile.Email
	if profile.FullName != nil && *profile.FullName != "" {
		name = *profile.FullName
	}
	message := fmt.Sprintf("Olá %s, seu pagamento foi aprovado e seu acesso está liberado!", name)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:" + number)
	params.SetFrom("whatsapp:" + s.from)
	params.SetBody(message)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Failed to send message to %s: %v", number, err)
		return
	}
	if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", number, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", number)
	}
}

// StartScheduler runs a daily 9 AM sweep counting members whose payment is
// still pending, for staff follow-up.
func (s *PaymentNotificationService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", s.SweepPendingPayments)

	c.Start()
	log.Println("Payment sweep scheduler started")
}

// SweepPendingPayments logs how many members are still awaiting approval.
func (s *PaymentNotificationService) SweepPendingPayments() {
	profiles, err := s.store.ListProfiles()
	if err != nil {
		log.Printf("Failed to fetch profiles for pending sweep: %v", err)
		return
	}

	pending := 0
	for _, p := range profiles {
		if p.PaymentStatus == models.PaymentPending {
			pending++
		}
	}
	log.Printf("Pending payment sweep: %d of %d members awaiting approval", pending, len(profiles))
}
