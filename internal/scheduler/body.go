package scheduler

import "fmt"

func dailyLogBody(name string, hour int, clientURL string) string {
	return fmt.Sprintf(`<h2>Daily Health Reminder</h2>
<p>Hi %s,</p>
<p>It's %d:00 - time for your daily check-in!</p>
<p>We noticed you haven't logged your vitals today yet.</p>
<p>Consistency is key to tracking your health! Please take a moment to record your blood pressure, sugar, or weight.</p>
<br/>
<a href="%s/dashboard">Log Now</a>`, name, hour, clientURL)
}

func medicineBody(userName, medName, dosage, instructions string) string {
	if instructions == "" {
		instructions = "As prescribed"
	}
	return fmt.Sprintf(`<h2>Time to take your medicine!</h2>
<p>Hi %s,</p>
<p>This is a reminder to take your scheduled medication:</p>
<div style="background-color: #f3f4f6; padding: 15px; border-radius: 8px; margin: 20px 0;">
	<p><strong>Medicine:</strong> %s</p>
	<p><strong>Dosage:</strong> %s</p>
	<p><strong>Instructions:</strong> %s</p>
</div>
<p>Stay healthy!</p>
<p>Health Tracker</p>`, userName, medName, dosage, instructions)
}

func appointmentBody(userName, doctorName, specialization, notes string) string {
	if notes == "" {
		notes = "None"
	}
	return fmt.Sprintf(`<h2>Appointment Reminder</h2>
<p>Hi %s,</p>
<p>You have an appointment scheduled for <strong>today</strong> with <strong>%s</strong> (%s).</p>
<p>Notes: %s</p>`, userName, doctorName, specialization, notes)
}
