package rbac

import (
	"go-timeclock/internal/domain"
	"go-timeclock/internal/tenant"

	"github.com/casbin/casbin/v2"
)

const (
	ResourceCompany        = "company"
	ResourceCompanySetting = "company_setting"
	ResourceCompanyUser    = "company_user"
	ResourceEmployee       = "employee"
	ResourceScan           = "scan"
	ResourceTimeEntry      = "time_entry"
)

const (
	ActionRead   = "read"
	ActionList   = "list"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
)

type rule struct {
	subject string
	domain.Permission
}

var defaultPolicy = []rule{
	{tenant.SubjectOwner, domain.Permission{Resource: ResourceCompany, Action: ActionList}},
	{tenant.SubjectOwner, domain.Permission{Resource: ResourceCompany, Action: ActionCreate}},
	{tenant.SubjectOwner, domain.Permission{Resource: ResourceCompany, Action: ActionDelete}},

	{tenant.SubjectUser, domain.Permission{Resource: ResourceCompany, Action: ActionRead}},
	{tenant.SubjectUser, domain.Permission{Resource: ResourceScan, Action: ActionCreate}},

	{tenant.SubjectAdmin, domain.Permission{Resource: ResourceCompanySetting, Action: ActionUpdate}},
	{tenant.SubjectAdmin, domain.Permission{Resource: ResourceCompanyUser, Action: "*"}},
	{tenant.SubjectAdmin, domain.Permission{Resource: ResourceEmployee, Action: "*"}},
	{tenant.SubjectAdmin, domain.Permission{Resource: ResourceTimeEntry, Action: "*"}},
}

// LoadDefaultPolicy installs the role policy. Admins inherit every user
// permission; owners inherit nothing.
func LoadDefaultPolicy(e *casbin.Enforcer) error {
	for _, r := range defaultPolicy {
		if _, err := e.AddPolicy(r.subject, r.Resource, r.Action); err != nil {
			return err
		}
	}
	if _, err := e.AddGroupingPolicy(tenant.SubjectAdmin, tenant.SubjectUser); err != nil {
		return err
	}
	return nil
}
