// Package scheduler runs the server-side reminder scans, independent of any
// open client session: an hourly daily-log nudge, an hourly medicine nudge
// and a daily appointment nudge, all delivered by email.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/jmhodges/clock"
	"github.com/robfig/cron/v3"

	"healthnudge/internal/config"
	"healthnudge/internal/dedup"
	"healthnudge/internal/mailer"
	"healthnudge/internal/store"
	"healthnudge/internal/timeofday"
	"healthnudge/internal/twilio"
)

const pruneHorizon = 48 * time.Hour

// Scheduler owns the cron entries and the process-lifetime dedup state that
// guards against a double-executed scan sending twice within the same hour.
// A process restart mid-hour can still duplicate a send; there is no
// persisted sent-marker.
type Scheduler struct {
	cfg    *config.Config
	store  *store.Store
	mail   mailer.Sender
	wa     *twilio.Client
	clk    clock.Clock
	cron   *cron.Cron
	logger *log.Logger
	seen   *dedup.Tracker
}

// New creates a Scheduler. wa may be a disabled client; WhatsApp mirroring
// of medicine nudges then stays off.
func New(cfg *config.Config, st *store.Store, mail mailer.Sender, wa *twilio.Client, clk clock.Clock, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		store:  st,
		mail:   mail,
		wa:     wa,
		clk:    clk,
		cron:   cron.New(cron.WithLocation(cfg.LocalTimezone)),
		logger: logger,
		seen:   dedup.NewTracker(),
	}
}

// Start registers the three scans and starts the scheduler loop. Each scan
// is independently scheduled and independently fallible.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("0 * * * *", func() { s.RunDailyLogNudge(s.now()) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 * * * *", func() { s.RunMedicineNudge(s.now()) }); err != nil {
		return err
	}
	spec := fmt.Sprintf("0 %d * * *", s.cfg.AppointmentHour)
	if _, err := s.cron.AddFunc(spec, func() { s.RunAppointmentNudge(s.now()) }); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Printf("scheduler: started, appointment scan at %02d:00", s.cfg.AppointmentHour)
	return nil
}

// Stop stops the cron scheduler gracefully, draining running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) now() time.Time {
	return s.clk.Now().In(s.cfg.LocalTimezone)
}

// RunDailyLogNudge emails every user whose preferred reminder hour equals
// now's hour and who has not logged any vitals since local midnight. The
// condition becomes false as soon as the user logs, which is what keeps
// this to one nudge per user per day.
func (s *Scheduler) RunDailyLogNudge(now time.Time) {
	s.seen.Prune(now.Add(-pruneHorizon))

	hour := now.Hour()
	users, err := s.store.UsersWithReminderHour(hour)
	if err != nil {
		s.logger.Printf("daily-log nudge: list users for hour %d: %v", hour, err)
		return
	}

	midnight := timeofday.Midnight(now)
	day := timeofday.DayKey(now)

	for _, user := range users {
		logged, err := s.store.HasHealthLogSince(user.ID, midnight)
		if err != nil {
			s.logger.Printf("daily-log nudge: check logs for user %d: %v", user.ID, err)
			continue
		}
		if logged {
			continue
		}

		key := dedup.NewKey("dailylog", user.ID, day, fmt.Sprintf("%02d", hour))
		if !s.seen.MarkOnce(key, now) {
			continue
		}

		if err := s.mail.Send(user.Email, "Reminder: Log Your Vitals", dailyLogBody(user.Name, hour, s.cfg.ClientURL)); err != nil {
			s.logger.Printf("daily-log nudge: send to %s: %v", user.Email, err)
		}
	}
}

// RunMedicineNudge emails the owner of every active medicine whose time
// falls within now's hour. Matching is deliberately hour-granular: a
// medicine scheduled for 08:47 is nudged whenever this scan runs during
// the 08:00 hour.
func (s *Scheduler) RunMedicineNudge(now time.Time) {
	s.seen.Prune(now.Add(-pruneHorizon))

	prefix := timeofday.HourPrefix(now)
	medicines, err := s.store.ActiveMedicinesDueInHour(prefix)
	if err != nil {
		s.logger.Printf("medicine nudge: list medicines for %s: %v", prefix, err)
		return
	}

	day := timeofday.DayKey(now)
	hour := fmt.Sprintf("%02d", now.Hour())

	for _, med := range medicines {
		if med.User.Email == "" {
			s.logger.Printf("medicine nudge: medicine %d has no owner email, skipping", med.ID)
			continue
		}

		key := dedup.NewKey("medicine", med.ID, day, hour)
		if !s.seen.MarkOnce(key, now) {
			continue
		}

		subject := fmt.Sprintf("Medicine Reminder: %s", med.Name)
		if err := s.mail.Send(med.User.Email, subject, medicineBody(med.User.Name, med.Name, med.Dosage, med.Instructions)); err != nil {
			s.logger.Printf("medicine nudge: send to %s: %v", med.User.Email, err)
		}

		if s.wa.Enabled() && med.User.Phone != "" {
			text := fmt.Sprintf("Time to take your medicine: %s (%s). %s", med.Name, med.Dosage, med.Instructions)
			if err := s.wa.SendWhatsAppMessage(med.User.Phone, text); err != nil {
				s.logger.Printf("medicine nudge: whatsapp to %s: %v", med.User.Phone, err)
			}
		}
	}
}

// RunAppointmentNudge emails the owner of every doctor with an appointment
// scheduled today, [midnight, midnight+24h).
func (s *Scheduler) RunAppointmentNudge(now time.Time) {
	s.seen.Prune(now.Add(-pruneHorizon))

	from := timeofday.Midnight(now)
	to := from.Add(24 * time.Hour)

	doctors, err := s.store.DoctorsWithAppointmentBetween(from, to)
	if err != nil {
		s.logger.Printf("appointment nudge: list doctors: %v", err)
		return
	}

	day := timeofday.DayKey(now)

	for _, doc := range doctors {
		if doc.User.Email == "" {
			s.logger.Printf("appointment nudge: doctor %d has no owner email, skipping", doc.ID)
			continue
		}

		key := dedup.NewKey("appointment", doc.ID, day, "daily")
		if !s.seen.MarkOnce(key, now) {
			continue
		}

		subject := fmt.Sprintf("Appointment Today: %s", doc.Name)
		if err := s.mail.Send(doc.User.Email, subject, appointmentBody(doc.User.Name, doc.Name, doc.Specialization, doc.Notes)); err != nil {
			s.logger.Printf("appointment nudge: send to %s: %v", doc.User.Email, err)
		}
	}
}
