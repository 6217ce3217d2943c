// Command app-seeder posts generated volunteer applications at the intake
// service, for load testing and exercising the rate limiter end to end.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/brockcsc/volunteer-intake/internal/submission"
)

var (
	targetURL = flag.String("url", "http://localhost:8787/", "intake endpoint URL")
	referer   = flag.String("referer", "http://localhost:5173/", "Referer header to send")
	count     = flag.Int("count", 10, "Number of applications to generate")
	interval  = flag.Duration("interval", 500*time.Millisecond, "Interval between applications")
	roleList  = flag.String("roles", "", "Comma-separated role titles (default: all known roles)")
)

func main() {
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	roles := knownRoles()
	if *roleList != "" {
		roles = strings.Split(*roleList, ",")
	}

	log.Printf("Starting application seeder:")
	log.Printf("  Target URL: %s", *targetURL)
	log.Printf("  Count: %d", *count)
	log.Printf("  Interval: %v", *interval)
	log.Printf("  Roles: %v", roles)

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	successCount := 0
	failCount := 0

	for i := 0; i < *count; i++ {
		role := roles[rand.Intn(len(roles))]
		sub := generateSubmission(role)

		status, err := send(client, sub)
		if err != nil {
			log.Printf("Failed to send application %d: %v", i+1, err)
			failCount++
		} else if status != http.StatusOK {
			log.Printf("Application %d rejected: HTTP %d", i+1, status)
			failCount++
		} else {
			successCount++
		}

		if *interval > 0 && i < *count-1 {
			time.Sleep(*interval)
		}
	}

	log.Printf("Seeding complete:")
	log.Printf("  Success: %d applications", successCount)
	log.Printf("  Failed: %d applications", failCount)
}

func knownRoles() []string {
	roles := make([]string, 0, len(submission.Roles))
	for title := range submission.Roles {
		roles = append(roles, title)
	}
	return roles
}

func generateSubmission(role string) submission.Submission {
	sub := submission.Submission{
		RoleTitle: role,
		FormData: submission.FormFields{
			Name:   gofakeit.Name(),
			Email:  gofakeit.Email(),
			Year:   fmt.Sprintf("%s %d", gofakeit.RandomString([]string{"Fall", "Winter", "Spring"}), 2025+rand.Intn(4)),
			Skills: gofakeit.Paragraph(2, 4, 12, " "),
		},
	}

	spec, ok := submission.Roles[role]
	if !ok {
		return sub
	}

	if spec.Portfolio {
		sub.FormData.Portfolio = gofakeit.URL()
	}
	for _, field := range spec.Fields {
		answer := gofakeit.Paragraph(1+rand.Intn(3), 3, 10, " ")
		switch field.ID {
		case "designtools":
			answer = gofakeit.RandomString([]string{"Figma", "Photoshop, Illustrator", "Canva and Figma"})
			sub.FormData.DesignTools = answer
		case "designproject":
			sub.FormData.DesignProject = answer
		case "wcssupport":
			sub.FormData.WCSSupport = answer
		case "wdexperience":
			sub.FormData.WDExperience = answer
		case "ecorganize":
			sub.FormData.ECOrganize = answer
		}
	}
	return sub
}

func send(client *http.Client, sub submission.Submission) (int, error) {
	data, err := json.Marshal(sub)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, *targetURL, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", *referer)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}
