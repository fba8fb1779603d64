package steps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

func registerAPISteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the API server is running$`, tc.theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, tc.iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, tc.iSendARequestToWithBody)
	ctx.Step(`^I clear the authorization header$`, tc.iClearTheAuthorizationHeader)
	ctx.Step(`^I use the access token "([^"]*)"$`, tc.iUseTheAccessToken)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, tc.iRememberTheResponseFieldAs)
}

func registerResponseSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, tc.theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, tc.theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, tc.theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, tc.theResponseHeaderShouldContain)
	ctx.Step(`^the response body should be:$`, tc.theResponseBodyShouldBe)
}

func (t *TestContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.baseURL + "/health")
	if err != nil {
		return fmt.Errorf("test server is not running: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

func (t *TestContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *TestContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	return t.executeRequest(method, t.replacePlaceholders(path), []byte(t.replacePlaceholders(body.Content)))
}

func (t *TestContext) iClearTheAuthorizationHeader() error {
	t.accessToken = ""
	return nil
}

func (t *TestContext) iUseTheAccessToken(token string) error {
	t.accessToken = token
	return nil
}

func (t *TestContext) iRememberTheResponseFieldAs(field, name string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}
	t.variables[name] = fmt.Sprintf("%v", value)
	return nil
}

// replacePlaceholders substitutes {{name}} with remembered values and
// {{refresh_token:email}} with the latest refresh token of a user.
func (t *TestContext) replacePlaceholders(content string) string {
	for name, value := range t.variables {
		content = strings.ReplaceAll(content, "{{"+name+"}}", value)
	}
	for email, pair := range t.tokens {
		content = strings.ReplaceAll(content, "{{refresh_token:"+email+"}}", pair.refresh)
	}
	return content
}

func (t *TestContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	t.response = &response{status: resp.StatusCode, headers: resp.Header, raw: raw}
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(raw, &t.response.body)
	}
	return nil
}

func (t *TestContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, t.response.status, string(t.response.raw))
	}
	return nil
}

func (t *TestContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	var js json.RawMessage
	if err := json.Unmarshal(t.response.raw, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func (t *TestContext) theResponseShouldContain(expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if !strings.Contains(string(t.response.raw), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(t.response.raw))
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldBe(field, expected string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actual := fmt.Sprintf("%v", value)
	if actual != t.replacePlaceholders(expected) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func (t *TestContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

func (t *TestContext) theResponseFieldShouldHaveItems(field string, count int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Map {
		return fmt.Errorf("field '%s' is not a list, got %T", field, value)
	}
	if rv.Len() != count {
		return fmt.Errorf("field '%s' expected %d items, got %d. Body: %s", field, count, rv.Len(), string(t.response.raw))
	}
	return nil
}

func (t *TestContext) theResponseHeaderShouldContain(header, expected string) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	if actual := t.response.headers.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *TestContext) theResponseBodyShouldBe(expected *godog.DocString) error {
	if t.response == nil {
		return fmt.Errorf("no response received")
	}
	actual := strings.TrimRight(strings.ReplaceAll(string(t.response.raw), "\r\n", "\n"), "\n")
	want := strings.TrimRight(expected.Content, "\n")
	if actual != want {
		return fmt.Errorf("expected body:\n%s\nactual body:\n%s", want, actual)
	}
	return nil
}

func (t *TestContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, fmt.Errorf("no response received")
	}
	if t.response.body == nil {
		return nil, fmt.Errorf("response is not JSON. Body: %s", string(t.response.raw))
	}

	value, ok := getFieldValue(t.response.body, field)
	if !ok {
		return nil, fmt.Errorf("field '%s' not found in response. Body: %s", field, string(t.response.raw))
	}
	return value, nil
}

// getFieldValue walks a decoded JSON value along a dot separated path.
// Numeric segments index into lists.
func getFieldValue(object any, dotSeparatedField string) (any, bool) {
	current := object
	for _, segment := range strings.Split(dotSeparatedField, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}
