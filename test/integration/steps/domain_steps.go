package steps

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"github.com/personal-finance/tracker-api/test/integration/mock"
)

const testPassword = "Secret123!"

func registerDomainSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Identity
	ctx.Step(`^I am logged in as "([^"]*)"$`, tc.iAmLoggedInAs)
	ctx.Step(`^a user "([^"]*)" exists$`, tc.aUserExists)

	// Ledger
	ctx.Step(`^the following transactions exist:$`, tc.theFollowingTransactionsExist)
	ctx.Step(`^the following budgets exist:$`, tc.theFollowingBudgetsExist)
	ctx.Step(`^the database table "([^"]*)" should have (\d+) rows?$`, tc.theDatabaseTableShouldHaveRows)

	// Statistics cache
	ctx.Step(`^the statistics cache should hold (\d+) snapshots?$`, tc.theStatisticsCacheShouldHoldSnapshots)
	ctx.Step(`^the statistics cache is failing$`, tc.theStatisticsCacheIsFailing)

	// Budget alert e-mails
	ctx.Step(`^the email provider is failing$`, tc.theEmailProviderIsFailing)
	ctx.Step(`^(\d+) budget alert emails? should have been sent$`, tc.budgetAlertEmailsShouldHaveBeenSent)
	ctx.Step(`^the last budget alert email should be addressed to "([^"]*)"$`, tc.theLastBudgetAlertEmailShouldBeAddressedTo)
	ctx.Step(`^the last budget alert email subject should be "([^"]*)"$`, tc.theLastBudgetAlertEmailSubjectShouldBe)

	// Insight generator
	ctx.Step(`^the insight service answers "([^"]*)"$`, tc.theInsightServiceAnswers)
	ctx.Step(`^the insight service is unavailable$`, tc.theInsightServiceIsUnavailable)
	ctx.Step(`^the insight service is failing$`, tc.theInsightServiceIsFailing)
	ctx.Step(`^the insight service should have received (\d+) prompts?$`, tc.theInsightServiceShouldHaveReceivedPrompts)
	ctx.Step(`^the last insight prompt should contain "([^"]*)"$`, tc.theLastInsightPromptShouldContain)

	// Ledger events
	ctx.Step(`^(\d+) "([^"]*)" events? should have been published$`, tc.eventsShouldHaveBeenPublished)
}

// iAmLoggedInAs registers the user on first use and logs in afterwards.
func (t *TestContext) iAmLoggedInAs(email string) error {
	if pair, ok := t.tokens[email]; ok {
		t.accessToken = pair.access
		return nil
	}

	if err := t.aUserExists(email); err != nil {
		return err
	}
	t.accessToken = t.tokens[email].access
	return nil
}

func (t *TestContext) aUserExists(email string) error {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"name":     strings.Split(email, "@")[0],
		"password": testPassword,
	})
	if err != nil {
		return err
	}

	current := t.accessToken
	t.accessToken = ""
	defer func() { t.accessToken = current }()

	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to register %s: status %d, body %s", email, t.response.status, string(t.response.raw))
	}

	access, okAccess := getFieldValue(t.response.body, "access_token")
	refresh, okRefresh := getFieldValue(t.response.body, "refresh_token")
	if !okAccess || !okRefresh {
		return fmt.Errorf("register response for %s has no tokens: %s", email, string(t.response.raw))
	}
	t.tokens[email] = tokenPair{access: fmt.Sprintf("%v", access), refresh: fmt.Sprintf("%v", refresh)}
	return nil
}

// theFollowingTransactionsExist creates each row through the API as the current user.
// Columns: type, amount, category and optionally description and date.
func (t *TestContext) theFollowingTransactionsExist(table *godog.Table) error {
	return t.postTableRows(table, "/api/v1/transactions", http.StatusCreated)
}

// theFollowingBudgetsExist creates each row through the API as the current user.
// Columns: category, limit and optionally alert_on_exceed.
func (t *TestContext) theFollowingBudgetsExist(table *godog.Table) error {
	return t.postTableRows(table, "/api/v1/budgets", http.StatusCreated)
}

func (t *TestContext) postTableRows(table *godog.Table, path string, expectedStatus int) error {
	if t.accessToken == "" {
		return errors.New("no user is logged in")
	}
	if len(table.Rows) < 2 {
		return errors.New("table needs a header row and at least one data row")
	}

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		item := map[string]any{}
		for i, cell := range row.Cells {
			column := header[i].Value
			switch column {
			case "alert_on_exceed":
				item[column] = cell.Value == "true"
			default:
				if cell.Value != "" {
					item[column] = cell.Value
				}
			}
		}

		payload, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if err := t.executeRequest(http.MethodPost, path, payload); err != nil {
			return err
		}
		if t.response.status != expectedStatus {
			return fmt.Errorf("failed to create %v: status %d, body %s", item, t.response.status, string(t.response.raw))
		}
	}
	return nil
}

func (t *TestContext) theDatabaseTableShouldHaveRows(table string, expected int) error {
	count, err := suite.db.Count(table, "")
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func (t *TestContext) theStatisticsCacheShouldHoldSnapshots(expected int) error {
	keys := mock.KeysWithPrefix(suite.redis, "stats:")
	if len(keys) != expected {
		return fmt.Errorf("expected %d cached snapshots, got %d: %v", expected, len(keys), keys)
	}
	return nil
}

func (t *TestContext) theStatisticsCacheIsFailing() error {
	suite.redis.SetError("LOADING redis is loading the dataset in memory")
	return nil
}

func (t *TestContext) theEmailProviderIsFailing() error {
	suite.emailAPI.SetResponse(http.MethodPost, emailsPath, http.StatusInternalServerError, map[string]any{
		"statusCode": http.StatusInternalServerError,
		"name":       "internal_server_error",
		"message":    "provider outage",
	})
	return nil
}

func (t *TestContext) budgetAlertEmailsShouldHaveBeenSent(expected int) error {
	if count := suite.emailAPI.RequestCount(http.MethodPost, emailsPath); count != expected {
		return fmt.Errorf("expected %d budget alert emails, got %d", expected, count)
	}
	return nil
}

func (t *TestContext) lastEmail() (map[string]any, error) {
	count := suite.emailAPI.RequestCount(http.MethodPost, emailsPath)
	if count == 0 {
		return nil, errors.New("no email was sent")
	}
	return suite.emailAPI.GetRequestBody(http.MethodPost, emailsPath, count-1), nil
}

func (t *TestContext) theLastBudgetAlertEmailShouldBeAddressedTo(expected string) error {
	body, err := t.lastEmail()
	if err != nil {
		return err
	}

	recipients, _ := body["to"].([]any)
	for _, recipient := range recipients {
		if recipient == expected {
			return nil
		}
	}
	return fmt.Errorf("expected email to %s, got %v", expected, body["to"])
}

func (t *TestContext) theLastBudgetAlertEmailSubjectShouldBe(expected string) error {
	body, err := t.lastEmail()
	if err != nil {
		return err
	}
	if subject := fmt.Sprintf("%v", body["subject"]); subject != expected {
		return fmt.Errorf("expected subject %s, got %s", expected, subject)
	}
	return nil
}

func (t *TestContext) theInsightServiceAnswers(answer string) error {
	suite.insights.script(true, answer, nil)
	return nil
}

func (t *TestContext) theInsightServiceIsUnavailable() error {
	suite.insights.script(false, "", nil)
	return nil
}

func (t *TestContext) theInsightServiceIsFailing() error {
	suite.insights.script(true, "", errors.New("upstream returned 503"))
	return nil
}

func (t *TestContext) theInsightServiceShouldHaveReceivedPrompts(expected int) error {
	if prompts := suite.insights.receivedPrompts(); len(prompts) != expected {
		return fmt.Errorf("expected %d insight prompts, got %d", expected, len(prompts))
	}
	return nil
}

func (t *TestContext) theLastInsightPromptShouldContain(expected string) error {
	prompts := suite.insights.receivedPrompts()
	if len(prompts) == 0 {
		return errors.New("no insight prompt was received")
	}
	if last := prompts[len(prompts)-1]; !strings.Contains(last, expected) {
		return fmt.Errorf("expected last prompt to contain %q, got %q", expected, last)
	}
	return nil
}

func (t *TestContext) eventsShouldHaveBeenPublished(expected int, eventType string) error {
	if count := suite.events.count(eventType); count != expected {
		return fmt.Errorf("expected %d %s events, got %d", expected, eventType, count)
	}
	return nil
}
