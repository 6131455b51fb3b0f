package integration

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	sessionToken string
	appID        string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the admissions server is running$`, s.theServerIsRunning)
	sc.Step(`^an admin "([^"]*)" with password "([^"]*)" exists$`, s.anAdminExists)
	sc.Step(`^an applicant profile "([^"]*)" with password "([^"]*)" exists$`, s.anApplicantProfileExists)
	sc.Step(`^an application from "([^"]*)" exists$`, s.anApplicationExists)

	// Authentication steps
	sc.Step(`^I sign in as "([^"]*)" with password "([^"]*)"$`, s.iSignInAs)
	sc.Step(`^I request the application list$`, s.iRequestTheApplicationList)
	sc.Step(`^I request the application list with the same token$`, s.iRequestTheApplicationList)

	// Evaluation steps
	sc.Step(`^I submit an evaluation scoring (\d+), (\d+) and (\d+)$`, s.iSubmitAnEvaluation)

	// Assertion steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response should carry a session token$`, s.theResponseShouldCarryASessionToken)
	sc.Step(`^no session should exist for "([^"]*)"$`, s.noSessionShouldExistFor)
	sc.Step(`^the application's overall score should be ([0-9.]+)$`, s.theOverallScoreShouldBe)
	sc.Step(`^the application should have (\d+) review\(s\)$`, s.theApplicationShouldHaveReviews)
	sc.Step(`^the audit log should contain an? "([^"]*)" entry for the application$`, s.theAuditLogShouldContainEntry)
}

func (s *StepsContext) theServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) createProfile(email, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	return s.tc.DB.Exec(`
		INSERT INTO profiles (id, email, full_name, role, password_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, password_hash = EXCLUDED.password_hash
	`, uuid.NewString(), email, "Test "+role, role, string(hash)).Error
}

func (s *StepsContext) anAdminExists(email, password string) error {
	return s.createProfile(email, password, "admin")
}

func (s *StepsContext) anApplicantProfileExists(email, password string) error {
	return s.createProfile(email, password, "applicant")
}

func (s *StepsContext) anApplicationExists(name string) error {
	s.appID = uuid.NewString()
	return s.tc.DB.Exec(`
		INSERT INTO applications (id, applicant_name, email, motivation, status)
		VALUES (?, ?, ?, ?, 'under_review')
	`, s.appID, name, "applicant@example.com", "I want to teach.").Error
}

func (s *StepsContext) iSignInAs(email, password string) error {
	payload, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := s.tc.HTTPClient.Post(s.tc.ServerURL+"/authn/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if err := s.captureResponse(resp); err != nil {
		return err
	}

	s.sessionToken = ""
	if resp.StatusCode == http.StatusOK {
		var body struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &body); err != nil {
			return err
		}
		s.sessionToken = body.Token
	}
	return nil
}

func (s *StepsContext) iRequestTheApplicationList() error {
	req, err := http.NewRequest(http.MethodGet, s.tc.ServerURL+"/applications", nil)
	if err != nil {
		return err
	}
	if s.sessionToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Token token=%q", s.sessionToken))
	}
	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	return s.captureResponse(resp)
}

func (s *StepsContext) iSubmitAnEvaluation(pedagogical, writing, alignment int) error {
	payload, _ := json.Marshal(map[string]interface{}{
		"pedagogical_score": pedagogical,
		"writing_score":     writing,
		"alignment_score":   alignment,
		"comments":          "integration test review",
	})
	req, err := http.NewRequest(http.MethodPost,
		s.tc.ServerURL+"/applications/"+s.appID+"/evaluations", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.sessionToken != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Token token=%q", s.sessionToken))
	}
	resp, err := s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	return s.captureResponse(resp)
}

func (s *StepsContext) captureResponse(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.response = resp
	s.responseBody = body
	return nil
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response captured")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d (body: %s)", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) theResponseShouldCarryASessionToken() error {
	if s.sessionToken == "" {
		return fmt.Errorf("no session token in response (body: %s)", s.responseBody)
	}
	return nil
}

func (s *StepsContext) noSessionShouldExistFor(email string) error {
	var count int64
	err := s.tc.DB.Raw(`
		SELECT count(*) FROM sessions s
		JOIN profiles p ON p.id = s.profile_id
		WHERE p.email = ?
	`, email).Scan(&count).Error
	if err != nil {
		return err
	}
	if count != 0 {
		return fmt.Errorf("expected no sessions for %s, found %d", email, count)
	}
	return nil
}

func (s *StepsContext) theOverallScoreShouldBe(expected float64) error {
	var score sql.NullFloat64
	row := s.tc.RawDB.QueryRow(`SELECT overall_score FROM applications WHERE id = $1`, s.appID)
	if err := row.Scan(&score); err != nil {
		return err
	}
	if !score.Valid {
		return fmt.Errorf("application has no overall score")
	}
	if score.Float64 != expected {
		return fmt.Errorf("expected overall score %v, got %v", expected, score.Float64)
	}
	return nil
}

func (s *StepsContext) theApplicationShouldHaveReviews(expected int) error {
	var count int64
	err := s.tc.DB.Raw(`SELECT count(*) FROM application_reviews WHERE application_id = ?`, s.appID).Scan(&count).Error
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d reviews, got %d", expected, count)
	}
	return nil
}

func (s *StepsContext) theAuditLogShouldContainEntry(action string) error {
	var count int64
	err := s.tc.DB.Raw(`
		SELECT count(*) FROM audit_entries WHERE action = ? AND entity_id = ?
	`, action, s.appID).Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no %q audit entry for application %s", action, s.appID)
	}
	return nil
}
