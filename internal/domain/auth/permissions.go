package auth

const (
	PermOrgRead          = "org.read"
	PermOrgWrite         = "org.write"
	PermScheduleRead     = "schedule.read"
	PermScheduleWrite    = "schedule.write"
	PermCoverageRead     = "coverage.read"
	PermCoverageReport   = "coverage.report"
	PermCoverageManage   = "coverage.manage"
	PermCoverageRespond  = "coverage.respond"
	PermCoverageFinalize = "coverage.finalize"
	PermAbsenceRead      = "absence.read"
	PermCompensationRead = "compensation.read"
	PermReportsRead      = "reports.read"
	PermAuditRead        = "audit.read"
	PermSystemAdmin      = "admin.system"
)

var DefaultPermissions = []string{
	PermOrgRead,
	PermOrgWrite,
	PermScheduleRead,
	PermScheduleWrite,
	PermCoverageRead,
	PermCoverageReport,
	PermCoverageManage,
	PermCoverageRespond,
	PermCoverageFinalize,
	PermAbsenceRead,
	PermCompensationRead,
	PermReportsRead,
	PermAuditRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermOrgRead,
		PermScheduleRead,
		PermCoverageRead,
		PermCoverageReport,
		PermCoverageRespond,
		PermAbsenceRead,
		PermCompensationRead,
	},
	RoleManager: {
		PermOrgRead,
		PermScheduleRead,
		PermScheduleWrite,
		PermCoverageRead,
		PermCoverageReport,
		PermCoverageRespond,
		PermAbsenceRead,
		PermCompensationRead,
		PermReportsRead,
	},
	RoleHR: {
		PermOrgRead,
		PermOrgWrite,
		PermScheduleRead,
		PermScheduleWrite,
		PermCoverageRead,
		PermCoverageReport,
		PermCoverageManage,
		PermCoverageRespond,
		PermCoverageFinalize,
		PermAbsenceRead,
		PermCompensationRead,
		PermReportsRead,
		PermAuditRead,
	},
	RoleOwner: {
		PermOrgRead,
		PermOrgWrite,
		PermScheduleRead,
		PermScheduleWrite,
		PermCoverageRead,
		PermCoverageReport,
		PermCoverageManage,
		PermCoverageRespond,
		PermCoverageFinalize,
		PermAbsenceRead,
		PermCompensationRead,
		PermReportsRead,
		PermAuditRead,
	},
	RoleAdmin: {
		PermOrgRead,
		PermOrgWrite,
		PermScheduleRead,
		PermScheduleWrite,
		PermCoverageRead,
		PermCoverageReport,
		PermCoverageManage,
		PermCoverageRespond,
		PermCoverageFinalize,
		PermAbsenceRead,
		PermCompensationRead,
		PermReportsRead,
		PermAuditRead,
		PermSystemAdmin,
	},
	RoleTech: {
		PermOrgRead,
		PermScheduleRead,
		PermCoverageRead,
		PermCoverageManage,
		PermCoverageRespond,
		PermCoverageFinalize,
		PermReportsRead,
		PermAuditRead,
		PermSystemAdmin,
	},
	RoleSuperUser: {
		PermOrgRead,
		PermOrgWrite,
		PermScheduleRead,
		PermScheduleWrite,
		PermCoverageRead,
		PermCoverageReport,
		PermCoverageManage,
		PermCoverageRespond,
		PermCoverageFinalize,
		PermAbsenceRead,
		PermCompensationRead,
		PermReportsRead,
		PermAuditRead,
		PermSystemAdmin,
	},
}
