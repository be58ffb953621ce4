package insights

import (
	"fmt"
	"strings"

	"healthnudge/internal/model"
)

// Profile carries the data eligible for inclusion in the AI context.
// AllowData mirrors the user's aiDataAccess setting; when false the
// assembled context must contain none of the user's health records.
type Profile struct {
	Name      string
	AllowData bool
	Medicines []model.Medicine
	Logs      []model.HealthLog
}

// BuildContext assembles the system context for a chat request. Personal
// health data is included only when the user has allowed AI data access;
// otherwise the context instructs the model that no such access exists.
func BuildContext(p Profile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "User Name: %s\nUser Health Profile:\n", p.Name)

	if !p.AllowData {
		sb.WriteString("AI Data Access is DISABLED in user settings. Do not reference any personal health logs, medications, or prescriptions as you do not have access to them. Focus only on the direct question.")
		return sb.String()
	}

	if len(p.Medicines) > 0 {
		sb.WriteString("Current Medications:\n")
		for _, m := range p.Medicines {
			fmt.Fprintf(&sb, "- %s (%s, %s)\n", m.Name, m.Dosage, m.Frequency)
		}
		sb.WriteString("\n")
	}

	if len(p.Logs) > 0 {
		sb.WriteString("Recent Health Logs:\n")
		for _, log := range p.Logs {
			fmt.Fprintf(&sb, "- Date: %s, BP: %s/%s, Sugar: %s mg/dL, Weight: %s kg, Heart Rate: %s bpm\n",
				log.LogDate.Format("2006-01-02"),
				intOrDash(log.Systolic), intOrDash(log.Diastolic),
				floatOrDash(log.BloodSugar), floatOrDash(log.Weight),
				intOrDash(log.HeartRate))
		}
	} else {
		sb.WriteString("No recent health logs available.\n")
	}

	return sb.String()
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func floatOrDash(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
