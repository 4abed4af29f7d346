package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending an
// OTP email. TTLMinutes tells the recipient how long the code stays valid.
type EmailJob struct {
	To         string `json:"to"`
	Code       string `json:"code"`
	TTLMinutes int    `json:"ttl_minutes"`
}
