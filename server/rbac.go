package server

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// defaultPolicies grant signed-in users their account routes and admins everything
// under /api/admin. Unknown roles such as "customer" are treated as users.
var defaultPolicies = [][]string{
	{RoleUser, "/api/account/*", "GET"},
	{RoleUser, RouteCheckout, "POST"},
	{RoleAdmin, "/api/admin/*", "GET|POST|PUT|DELETE"},
}

// NewEnforcer builds the in-memory role policy. Admins inherit every user permission.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("[NewEnforcer] model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("[NewEnforcer] enforcer: %w", err)
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("[NewEnforcer] policies: %w", err)
	}
	if _, err := e.AddGroupingPolicy(RoleAdmin, RoleUser); err != nil {
		return nil, fmt.Errorf("[NewEnforcer] grouping: %w", err)
	}
	return e, nil
}
