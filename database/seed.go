package database

import (
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Default admin credentials for a fresh install. The password must be changed
// after first login.
const (
	seedAdminName     = "Admin"
	seedAdminEmail    = "admin@gardentss.edu.zm"
	seedAdminPassword = "admin123"
)

// Seed inserts the default admin account and the initial page content. Both
// steps only run when the corresponding table is empty, so calling Seed on
// every startup is safe.
func Seed(dbConn *sqlx.DB) error {
	if err := seedAdmin(dbConn); err != nil {
		return err
	}
	return seedContent(dbConn)
}

func seedAdmin(dbConn *sqlx.DB) error {
	var count int
	if err := dbConn.Get(&count, "SELECT COUNT(*) FROM admins"); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), 10)
	if err != nil {
		return err
	}

	_, err = dbConn.Exec(
		"INSERT INTO admins (username, email, password, created_at) VALUES (?, ?, ?, ?)",
		seedAdminName, seedAdminEmail, string(hash), time.Now(),
	)
	if err != nil {
		return err
	}

	logger.Info("Default admin created", zap.String("email", seedAdminEmail))
	return nil
}

// seedContent fills page_content with the rows the public site renders from.
// Values are either plain strings or JSON-encoded lists; consumers decode them
// structurally on read.
func seedContent(dbConn *sqlx.DB) error {
	var count int
	if err := dbConn.Get(&count, "SELECT COUNT(*) FROM page_content"); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	featuredUsers, err := json.Marshal([]string{
		"NSENGIYUMVA Eric", "HAKIZIMANA Aimable", "CYUZUZO J.Bosco",
	})
	if err != nil {
		return err
	}

	teamMembers, err := json.Marshal([]struct {
		Role string `json:"role"`
		Name string `json:"name"`
	}{
		{Role: "Principal", Name: "Mr. Eric M."},
		{Role: "Vice Principal", Name: "Ms. Sarah K."},
		{Role: "Head of Technical Dept", Name: "Mr. John D."},
		{Role: "Head of Science Dept", Name: "Mrs. Jane S."},
	})
	if err != nil {
		return err
	}

	seedRows := [][4]string{
		// Home page
		{"home", "hero", "fullText", "WELCOME TO THE GARDEN TSS TO GET THE BEST TECHNICAL EDUCATIONAL EXPERIENCE AND ACADEMIC INNOVATION BECAUSE WE ARE THE BEST FOR CAREER DEVELOPMENT AND FUTURE SUCCESS"},
		{"home", "hero", "bgImage", "/images/hero-bg.jpg"},
		{"home", "users", "list", string(featuredUsers)},
		{"home", "cards", "image1", "/images/campus.jpg"},
		{"home", "cards", "image2", "/images/workshop.png"},

		// Team page
		{"team", "header", "title", "Our Team"},
		{"team", "members", "list", string(teamMembers)},

		// About page
		{"about", "header", "title", "About GARDEN TSS"},
		{"about", "mission", "text", "To provide high-quality technical and vocational education that equips students with practical skills and ethical values."},
		{"about", "vision", "text", "To be a center of excellence in technical education, producing innovative leaders who contribute to national development."},

		// Contact page
		{"contact", "header", "title", "Contact Us"},
		{"contact", "details", "address", "123 Garden Avenue, Tech City"},
		{"contact", "details", "phone", "+260 977 123456"},
		{"contact", "details", "email", "info@gardentss.edu.zm"},

		// Footer
		{"footer", "social", "facebook", "https://facebook.com"},
		{"footer", "social", "twitter", "https://twitter.com"},
		{"footer", "social", "linkedin", "https://linkedin.com"},
		{"footer", "copyright", "text", "© 2026 NSENGIYUMVA Eric"},

		// Not found page
		{"notfound", "header", "title", "404 - Page Not Found"},
		{"notfound", "message", "text", "Sorry, the page you are looking for does not exist."},
		{"notfound", "link", "text", "Go back to Home"},
	}

	for _, row := range seedRows {
		_, err := dbConn.Exec(
			"INSERT INTO page_content (page_name, section_name, content_key, content_value) VALUES (?, ?, ?, ?)",
			row[0], row[1], row[2], row[3],
		)
		if err != nil {
			return err
		}
	}

	logger.Info("Initial content seeded", zap.Int("rows", len(seedRows)))
	return nil
}
