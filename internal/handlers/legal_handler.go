package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type LegalHandler struct{}

func NewLegalHandler() *LegalHandler {
	return &LegalHandler{}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Privacy Policy - ClinicPass</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Privacy Policy</h1>
<p>Last updated: August 2026</p>
<h2>Information We Collect</h2>
<p>When you check in at a healthcare practice through ClinicPass we collect the details that practice's form asks for, which may include contact details, medical aid information and health information. With your consent, answers can be saved to your ClinicPass profile to speed up future check-ins.</p>
<h2>Special Personal Information</h2>
<p>Health information is special personal information under POPIA. It is collected only with your explicit consent, shared only with the practice you checked in at, and retained for the consent period you selected.</p>
<h2>How We Use Your Information</h2>
<p>Your answers are delivered to the practice whose form you completed. ClinicPass does not sell personal information or use it for advertising.</p>
<h2>Data Storage</h2>
<p>Your data is stored on encrypted servers. Audit records of administrative actions are kept for compliance purposes.</p>
<h2>Account Deletion</h2>
<p>You can delete your account at any time. Submissions already delivered to a practice are detached from your account rather than destroyed, as the practice may have its own retention obligations.</p>
<h2>Contact</h2>
<p>For questions about this policy, contact privacy@clinicpass.app</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Terms of Service - ClinicPass</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Terms of Service</h1>
<p>Last updated: August 2026</p>
<h2>Acceptance</h2>
<p>By using ClinicPass, you agree to these terms.</p>
<h2>The Service</h2>
<p>ClinicPass lets healthcare practices build digital check-in forms and lets patients complete them. The practice, not ClinicPass, is responsible for the content of its forms and for the care it provides.</p>
<h2>Provider Accounts</h2>
<p>Practice accounts are reviewed before activation. Practices must only request information they are entitled to collect and must honour the consent durations patients select.</p>
<h2>Termination</h2>
<p>We may suspend or terminate accounts that violate these terms.</p>
<h2>Contact</h2>
<p>For questions, contact support@clinicpass.app</p>
</body></html>`)
}
