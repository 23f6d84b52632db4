package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendgridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &sendgridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *sendgridEmailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendgridEmailService) SendBookingRequested(ctx context.Context, ownerEmail, renterName, vehicleName, start, end string) error {
	subject := fmt.Sprintf("New booking request for your %s", vehicleName)
	body := fmt.Sprintf("%s has requested to rent your %s from %s to %s.\n\nReview the request in your dashboard.\n\nThe DriveShare Team", renterName, vehicleName, start, end)
	return s.send(ownerEmail, subject, body)
}

func (s *sendgridEmailService) SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName, ownerName string) error {
	subject := fmt.Sprintf("Booking confirmed: %s", vehicleName)
	body := fmt.Sprintf("%s accepted your booking request for %s.\n\nOpen the booking to review and sign the rental agreement.\n\nThe DriveShare Team", ownerName, vehicleName)
	return s.send(renterEmail, subject, body)
}

func (s *sendgridEmailService) SendBookingCancelled(ctx context.Context, email, vehicleName, byName string) error {
	subject := fmt.Sprintf("Booking cancelled: %s", vehicleName)
	body := fmt.Sprintf("The booking for %s was cancelled by the %s.\n\nThe DriveShare Team", vehicleName, byName)
	return s.send(email, subject, body)
}

func (s *sendgridEmailService) SendBookingCompleted(ctx context.Context, email, vehicleName string) error {
	subject := fmt.Sprintf("Rental completed: %s", vehicleName)
	body := fmt.Sprintf("Your rental of %s is complete. Thanks for using DriveShare.\n\nThe DriveShare Team", vehicleName)
	return s.send(email, subject, body)
}

func (s *sendgridEmailService) SendBookingExpired(ctx context.Context, renterEmail, vehicleName string) error {
	subject := fmt.Sprintf("Booking request expired: %s", vehicleName)
	body := fmt.Sprintf("Your booking request for %s was cancelled because the owner did not respond in time. The dates are free again if you want to rebook.\n\nThe DriveShare Team", vehicleName)
	return s.send(renterEmail, subject, body)
}

func (s *sendgridEmailService) SendAgreementActivated(ctx context.Context, email, vehicleName string) error {
	subject := fmt.Sprintf("Rental agreement active: %s", vehicleName)
	body := fmt.Sprintf("Both parties have signed the rental agreement for %s. The rental is now active.\n\nThe DriveShare Team", vehicleName)
	return s.send(email, subject, body)
}

func (s *sendgridEmailService) SendReturnReminder(ctx context.Context, ownerEmail, vehicleName, endDate string) error {
	subject := fmt.Sprintf("Rental return due: %s", vehicleName)
	body := fmt.Sprintf("The rental of %s ended on %s. Once the vehicle is back, mark the booking as completed.\n\nThe DriveShare Team", vehicleName, endDate)
	return s.send(ownerEmail, subject, body)
}
