package services

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"

	"accidenta/internal/apperrors"
	"accidenta/internal/models"
	"accidenta/internal/repositories"
	"accidenta/pkg/mailer"
	"accidenta/pkg/rabbitmq"
)

// PageLimit is the fixed page size for report listings.
const PageLimit = 10

// UrgencyDescription is the auto-filled description of one-tap urgency reports.
const UrgencyDescription = "Situacion de emergencia que necesita ayuda inmediata."

// ReportPage is one page of a cursor-paginated report listing. LastCursor is
// set iff the page is full; its absence signals end-of-stream.
type ReportPage struct {
	Items      []models.Report `json:"items"`
	LastCursor *string         `json:"lastCursor,omitempty"`
}

// CreateReportInput is the validated report payload.
type CreateReportInput struct {
	Type        string
	DNI         string
	Description string
	Location    string
	Images      []string
}

// ReportService handles report creation, listing and the emergency
// notification fan-out.
type ReportService struct {
	reportRepo  repositories.ReportRepository
	userRepo    repositories.UserRepository
	contactRepo repositories.ContactRepository
	sender      mailer.Sender
	mqClient    *rabbitmq.Client
}

// NewReportService creates a new ReportService. mqClient may be nil; report
// events are then simply not published.
func NewReportService(
	reportRepo repositories.ReportRepository,
	userRepo repositories.UserRepository,
	contactRepo repositories.ContactRepository,
	sender mailer.Sender,
	mqClient *rabbitmq.Client,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		userRepo:    userRepo,
		contactRepo: contactRepo,
		sender:      sender,
		mqClient:    mqClient,
	}
}

// Create persists a new report authored by the given user, then kicks off the
// notification fan-out and event publication. Neither can fail the creation:
// once the row is saved the report exists, whatever happens to the mail.
func (s *ReportService) Create(authorID string, input CreateReportInput) (*models.Report, error) {
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		Type:        input.Type,
		DNI:         input.DNI,
		Description: input.Description,
		Location:    input.Location,
		Images:      pq.StringArray(input.Images),
		UserID:      author.ID,
		User:        author,
	}

	if err := s.reportRepo.Create(report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	go s.NotifyContacts(report, author)
	s.publishReportCreated(report)

	return report, nil
}

// CreateUrgency persists a one-tap urgency report: the caller is the subject,
// the description and type are auto-filled, and there are no images.
func (s *ReportService) CreateUrgency(authorID, location string) (*models.Report, error) {
	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		return nil, err
	}

	return s.Create(authorID, CreateReportInput{
		Type:        models.TypeUrgency,
		DNI:         author.DNI,
		Description: UrgencyDescription,
		Location:    location,
	})
}

// NotifyContacts delivers an emergency email to every trusted contact of the
// user whose DNI is the report's subject. All deliveries run concurrently and
// every attempt settles exactly once; failures are logged per recipient and
// never propagated.
func (s *ReportService) NotifyContacts(report *models.Report, author *models.User) []mailer.DeliveryResult {
	contacts, err := s.contactRepo.ListByOwnerDNI(report.DNI)
	if err != nil {
		logrus.WithError(err).Error("Error looking up trusted contacts for notification")
		return nil
	}
	if len(contacts) == 0 {
		return nil
	}

	msgs := make([]mailer.Message, 0, len(contacts))
	for _, contact := range contacts {
		html, err := renderNotification(contact, report, author)
		if err != nil {
			logrus.WithError(err).WithField("recipient", contact.Email).Error("Error rendering notification email")
			continue
		}
		msgs = append(msgs, mailer.Message{
			To:      contact.Email,
			Subject: fmt.Sprintf("🚨 Alerta de Emergencia - %s necesita tu ayuda", author.FirstName),
			HTML:    html,
		})
	}

	results := mailer.Broadcast(s.sender, msgs)
	for _, result := range results {
		if result.Err != nil {
			logrus.WithError(result.Err).WithField("recipient", result.Recipient).Warn("Error enviando email de emergencia")
		}
	}
	return results
}

// ListByAuthor returns a page of reports authored by the user.
func (s *ReportService) ListByAuthor(userID, cursor string) (*ReportPage, error) {
	before, err := parseCursor(cursor)
	if err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.ListByAuthor(userID, before, PageLimit)
	if err != nil {
		return nil, err
	}
	return buildPage(reports), nil
}

// ListInvolving returns a page of reports whose subject DNI is the caller's,
// regardless of who authored them.
func (s *ReportService) ListInvolving(userID, cursor string) (*ReportPage, error) {
	before, err := parseCursor(cursor)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.ListBySubjectDNI(user.DNI, before, PageLimit)
	if err != nil {
		return nil, err
	}
	return buildPage(reports), nil
}

// LastByAuthor returns the caller's most recent report, or nil.
func (s *ReportService) LastByAuthor(userID string) (*models.Report, error) {
	return s.reportRepo.LastByAuthor(userID)
}

func (s *ReportService) publishReportCreated(report *models.Report) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"reportID":  report.ID,
		"type":      report.Type,
		"dni":       report.DNI,
		"createdAt": report.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := s.mqClient.PublishReportCreated(event); err != nil {
		logrus.WithError(err).Warnf("Failed to publish report created event for report %s", report.ID)
	}
}

func parseCursor(cursor string) (*time.Time, error) {
	if cursor == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, cursor)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "El cursor de paginación es inválido", err)
	}
	return &t, nil
}

// buildPage attaches the continuation cursor: the oldest item's timestamp,
// present only when the page is full. A page that exactly exhausts the data
// still carries a cursor; the next request just comes back empty.
func buildPage(reports []models.Report) *ReportPage {
	if reports == nil {
		reports = []models.Report{}
	}

	page := &ReportPage{Items: reports}
	if len(reports) == PageLimit {
		cursor := reports[len(reports)-1].CreatedAt.UTC().Format(time.RFC3339Nano)
		page.LastCursor = &cursor
	}
	return page
}
