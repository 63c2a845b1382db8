package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Views. Exactly one is bound to a session.
const (
	ViewEmployee = "employee"
	ViewManager  = "manager"
	ViewHR       = "hr"
	ViewAdmin    = "admin"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policies is the complete, static permission table for the four views.
// Section scoping for managers is enforced in the review service, not here.
var policies = [][]string{
	{ViewEmployee, "entries", "create"},
	{ViewEmployee, "entries", "read"},

	{ViewManager, "review", "read"},
	{ViewManager, "review", "approve"},
	{ViewManager, "review", "export"},
	{ViewManager, "directory", "read"},

	{ViewHR, "review", "read"},
	{ViewHR, "review", "export"},
	{ViewHR, "directory", "read"},

	{ViewAdmin, "registrations", "read"},
	{ViewAdmin, "registrations", "approve"},
	{ViewAdmin, "registrations", "reject"},
	{ViewAdmin, "credentials", "update"},
	{ViewAdmin, "directory", "read"},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(view, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: e}, nil
}

func (s *service) Enforce(view, resource, action string) (bool, error) {
	return s.enforcer.Enforce(view, resource, action)
}
