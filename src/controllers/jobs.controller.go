package controllers

import (
	"acelera/src/common"
	"acelera/src/config"
	"acelera/src/lib"
	"acelera/src/utils"
	"context"
	"fmt"
	"log"
	"strings"
)

// SendAgendaDigest emails today's bookings to the studio.
func (s *Studio) SendAgendaDigest(ctx context.Context) error {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return err
	}
	today := s.Now()
	agenda := common.BookingsForDay(bookings, today, s.loc)

	var body strings.Builder
	fmt.Fprintf(&body, "Agenda de %s\n\n", today.Format("02/01/2006"))
	if len(agenda) == 0 {
		body.WriteString("Nenhum agendamento para hoje.\n")
	}
	for _, b := range agenda {
		fmt.Fprintf(&body, "%s-%s  %s  %s (%s)\n",
			b.StartAt.In(s.loc).Format(config.CLOCK_FORMAT),
			b.EndAt.In(s.loc).Format(config.CLOCK_FORMAT),
			b.ClientName, b.ServiceName, b.Status)
	}
	err = s.mailer.Send(ctx, &lib.SendMailInput{
		From:     config.MailFrom(),
		FromName: config.STUDIO_NAME,
		To:       config.DigestRecipients(),
		Subject:  fmt.Sprintf("%s: %d agendamento(s) hoje", config.STUDIO_NAME, len(agenda)),
		Body:     body.String(),
	})
	if err != nil {
		log.Printf("Could not send agenda digest: %s\n", err.Error())
		return err
	}
	return nil
}

// ArchiveLedger uploads the ledger CSV. Without an archive it does nothing.
func (s *Studio) ArchiveLedger(ctx context.Context) (string, error) {
	if s.archive == nil {
		return "", nil
	}
	export, err := s.ExportLedger(ctx, "csv")
	if err != nil {
		return "", err
	}
	uri, err := s.archive.Put(ctx, export.Name, utils.CONTENT_TYPE_CSV, export.Body)
	if err != nil {
		log.Printf("Could not archive ledger: %s\n", err.Error())
		return "", err
	}
	return uri, nil
}
