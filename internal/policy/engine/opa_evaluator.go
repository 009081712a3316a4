package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/open-policy-agent/opa/v1/ast"
	"github.com/open-policy-agent/opa/v1/rego"

	userdomain "jobpilot/backend/internal/user/domain"
)

const policyQuery = "data.jobpilot.login_admission"

// DefaultDenyReason is used when a policy denies without setting reason.
const DefaultDenyReason = "verification incomplete"

// DefaultLoginPolicy admits only users who completed mobile verification.
const DefaultLoginPolicy = `package jobpilot.login_admission

default allow := false

allow if {
	input.user.is_mobile_verified
}

reason := "verification incomplete" if {
	not allow
}
`

// OPAEvaluator evaluates the login admission policy with OPA Rego. The policy is compiled once.
type OPAEvaluator struct {
	query rego.PreparedEvalQuery
}

// NewOPAEvaluator compiles policy (DefaultLoginPolicy when empty). The module must declare
// package jobpilot.login_admission and define a boolean allow; reason is optional.
func NewOPAEvaluator(ctx context.Context, policy string) (*OPAEvaluator, error) {
	if strings.TrimSpace(policy) == "" {
		policy = DefaultLoginPolicy
	}
	compiler, err := ast.CompileModules(map[string]string{"login_admission.rego": policy})
	if err != nil {
		return nil, fmt.Errorf("compile login policy: %w", err)
	}
	pq, err := rego.New(
		rego.Query(policyQuery),
		rego.Compiler(compiler),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare login policy: %w", err)
	}
	return &OPAEvaluator{query: pq}, nil
}

// NewOPAEvaluatorFromFile loads the policy from path, or uses the default when path is empty.
func NewOPAEvaluatorFromFile(ctx context.Context, path string) (*OPAEvaluator, error) {
	if path == "" {
		return NewOPAEvaluator(ctx, "")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read login policy: %w", err)
	}
	return NewOPAEvaluator(ctx, string(b))
}

// EvaluateLogin fails closed: any evaluation problem is returned as an error with a deny decision.
func (e *OPAEvaluator) EvaluateLogin(ctx context.Context, user *userdomain.User) (Decision, error) {
	deny := Decision{Reason: DefaultDenyReason}
	if user == nil {
		return deny, nil
	}
	rs, err := e.query.Eval(ctx, rego.EvalInput(buildInput(user)))
	if err != nil {
		return deny, fmt.Errorf("eval login policy: %w", err)
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return deny, errors.New("login policy returned no result")
	}
	doc, ok := rs[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return deny, errors.New("login policy result is not an object")
	}
	allow, _ := doc["allow"].(bool)
	if allow {
		return Decision{Allow: true}, nil
	}
	if reason, _ := doc["reason"].(string); reason != "" {
		deny.Reason = reason
	}
	return deny, nil
}

// HealthCheck evaluates the compiled policy against a minimal unverified user.
func (e *OPAEvaluator) HealthCheck(ctx context.Context) error {
	_, err := e.EvaluateLogin(ctx, &userdomain.User{})
	return err
}

func buildInput(u *userdomain.User) map[string]interface{} {
	return map[string]interface{}{
		"user": map[string]interface{}{
			"id":                 u.ID,
			"is_mobile_verified": u.IsMobileVerified,
			"is_email_verified":  u.IsEmailVerified,
			"signup_type":        string(u.SignupType),
		},
	}
}
