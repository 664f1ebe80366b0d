package user

// Permission names follow the resource:action convention.
const (
	PermUsersRead     = "users:read"
	PermUsersUpdate   = "users:update"
	PermUsersSuspend  = "users:suspend"
	PermGroupsRead    = "groups:read"
	PermGroupsCreate  = "groups:create"
	PermGroupsUpdate  = "groups:update"
	PermGroupsArchive = "groups:archive"
	PermMembersManage = "members:manage"
	PermContribRead   = "contributions:read"
	PermContribCreate = "contributions:create"
	PermLoansRead     = "loans:read"
	PermLoansCreate   = "loans:create"
	PermLoansReview   = "loans:review"
	PermLoansApprove  = "loans:approve"
	PermLoansDisburse = "loans:disburse"
	PermLoansRepay    = "loans:repay"
	PermLoansDefault  = "loans:default"
	PermReportsRead   = "reports:read"
)

// permissions is the static role table. There is no dynamic mutation; grants
// change only with a deploy.
var permissions = map[string][]Role{
	PermUsersRead:    {RoleAdmin, RoleLeader, RoleAuditor},
	PermUsersUpdate:  {RoleAdmin, RoleLeader},
	PermUsersSuspend: {RoleAdmin, RoleLeader},

	PermGroupsRead:    {RoleAdmin, RoleLeader, RoleTreasurer, RoleMember, RoleAuditor},
	PermGroupsCreate:  {RoleAdmin},
	PermGroupsUpdate:  {RoleAdmin, RoleLeader},
	PermGroupsArchive: {RoleAdmin},
	PermMembersManage: {RoleAdmin, RoleLeader},

	PermContribRead:   {RoleAdmin, RoleLeader, RoleTreasurer, RoleMember, RoleAuditor},
	PermContribCreate: {RoleAdmin, RoleLeader, RoleTreasurer, RoleMember},

	PermLoansRead:     {RoleAdmin, RoleLeader, RoleTreasurer, RoleMember, RoleAuditor},
	PermLoansCreate:   {RoleAdmin, RoleLeader, RoleMember},
	PermLoansReview:   {RoleAdmin, RoleLeader},
	PermLoansApprove:  {RoleAdmin, RoleLeader},
	PermLoansDisburse: {RoleAdmin, RoleLeader, RoleTreasurer},
	PermLoansRepay:    {RoleAdmin, RoleLeader, RoleTreasurer},
	PermLoansDefault:  {RoleAdmin},

	PermReportsRead: {RoleAdmin, RoleLeader, RoleTreasurer, RoleAuditor},
}

// HasPermission reports whether role is granted the named permission.
func HasPermission(role Role, permission string) bool {
	for _, r := range permissions[permission] {
		if r == role {
			return true
		}
	}
	return false
}
