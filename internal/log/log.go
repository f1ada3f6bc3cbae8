// Package log writes one JSON object per line through the standard logger,
// tagged with the request id and the caller identity established by the
// authorization gate.
package log

import (
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Fiber locals set by the authorization gate.
const (
	IdentityLocal = "email"
	PayloadLocal  = "identity"
)

type entry struct {
	TS       string         `json:"ts"`
	Level    string         `json:"level"`
	ReqID    string         `json:"req_id,omitempty"`
	Method   string         `json:"method,omitempty"`
	Path     string         `json:"path,omitempty"`
	IP       string         `json:"ip,omitempty"`
	Identity string         `json:"identity,omitempty"`
	Claims   []string       `json:"claims,omitempty"`
	Action   string         `json:"action"`
	Status   int            `json:"status,omitempty"`
	Err      string         `json:"err,omitempty"`
	Fields   map[string]any `json:"fields,omitempty"`
}

func newEntry(level string, c *fiber.Ctx, action string) entry {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action}
	if c == nil {
		return e
	}
	e.Method, e.Path, e.IP = c.Method(), c.Path(), c.IP()
	e.Status = c.Response().StatusCode()
	if rid, ok := c.Locals("requestid").(string); ok {
		e.ReqID = rid
	}
	if who, ok := c.Locals(IdentityLocal).(string); ok {
		e.Identity = who
	}
	// claim names only; values may carry personal data
	if payload, ok := c.Locals(PayloadLocal).(map[string]any); ok {
		for k := range payload {
			e.Claims = append(e.Claims, k)
		}
		sort.Strings(e.Claims)
	}
	return e
}

func emit(e entry) {
	b, err := json.Marshal(e)
	if err != nil {
		log.Printf(`{"level":"error","action":"log.encode","err":%q}`, err.Error())
		return
	}
	log.Println(string(b))
}

// Info is for routine events such as token issuance.
func Info(c *fiber.Ctx, action string, fields map[string]any) {
	e := newEntry("info", c, action)
	e.Fields = fields
	emit(e)
}

// Audit records a write against the store or the payment processor.
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	e := newEntry("audit", c, action)
	e.Fields = fields
	emit(e)
}

// Security records a request the authorization gate turned away.
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	e := newEntry("warn", c, action)
	e.Fields = fields
	emit(e)
}

func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := newEntry("error", c, action)
	if err != nil {
		e.Err = err.Error()
	}
	e.Fields = fields
	emit(e)
}
