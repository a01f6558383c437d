package dto

import "github.com/alghaibb/everkind-community-support-sub000/internal/model"

// ── 招聘申请模块 DTO ──

// SubmitApplicationRequest 招聘申请提交请求（官网表单）
type SubmitApplicationRequest struct {
	FirstName   string `json:"first_name" binding:"required,min=1,max=100"`
	LastName    string `json:"last_name"  binding:"required,min=1,max=100"`
	Email       string `json:"email"      binding:"required,email"`
	Phone       string `json:"phone"      binding:"required,min=8,max=30"`
	RoleApplied string `json:"role_applied" binding:"required"`
	Experience  string `json:"experience" binding:"omitempty,max=5000"`

	// 合规凭证：遗留三态字符串 "Yes" | "No" | "N/A" | ""
	WorkingWithChildrenCheck string  `json:"working_with_children_check" binding:"omitempty,max=10"`
	PoliceCheck              string  `json:"police_check"                binding:"omitempty,max=10"`
	FirstAidCPR              string  `json:"first_aid_cpr"               binding:"omitempty,max=10"`
	Cert3IndividualSupport   string  `json:"cert3_individual_support"    binding:"omitempty,max=10"`
	AHPRARegistration        string  `json:"ahpra_registration"          binding:"omitempty,max=10"`
	AHPRANumber              *string `json:"ahpra_number"                binding:"omitempty,max=30"`

	Documents    []string                 `json:"documents"    binding:"omitempty,max=20"`
	Availability model.WeeklyAvailability `json:"availability" binding:"omitempty"`
}

// ApplicationListRequest 申请列表查询参数
type ApplicationListRequest struct {
	PaginationRequest
	Status  string `form:"status"  binding:"omitempty,oneof=pending reviewed accepted rejected"`
	Role    string `form:"role"    binding:"omitempty"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// RejectApplicationRequest 拒绝申请请求
type RejectApplicationRequest struct {
	Reason *string `json:"reason" binding:"omitempty,max=500"`
}

// AcceptApplicationRequest 接受申请（入职开通）请求
type AcceptApplicationRequest struct {
	StaffRole  string   `json:"staff_role" binding:"required"`
	StartDate  string   `json:"start_date" binding:"required"` // "2006-01-02"
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gt=0"`
}

// ApplicationResponse 申请摘要响应
type ApplicationResponse struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	RoleApplied string  `json:"role_applied"`
	Status      string  `json:"status"`
	AppliedAt   string  `json:"applied_at"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
}

// ApplicationDetailResponse 申请详情响应（含合规评估）
type ApplicationDetailResponse struct {
	ApplicationResponse
	Experience      string                   `json:"experience,omitempty"`
	Documents       []string                 `json:"documents,omitempty"`
	Availability    model.WeeklyAvailability `json:"availability,omitempty"`
	RejectionReason *string                  `json:"rejection_reason,omitempty"`
	Compliance      *ComplianceResponse      `json:"compliance"`
}

// ComplianceResponse 合规评估响应
type ComplianceResponse struct {
	Checks         []ComplianceCheckResponse `json:"checks"`
	PassedRequired int                       `json:"passed_required"`
	TotalRequired  int                       `json:"total_required"`
}

// ComplianceCheckResponse 单项合规检查响应
type ComplianceCheckResponse struct {
	Field      string `json:"field"`
	Label      string `json:"label"`
	Required   bool   `json:"required"`
	Applicable bool   `json:"applicable"`
	Satisfied  bool   `json:"satisfied"`
	Status     string `json:"status"` // satisfied | not_satisfied | not_applicable
}

// AcceptApplicationResponse 入职开通响应
type AcceptApplicationResponse struct {
	StaffID      string `json:"staff_id"`
	AccountID    string `json:"account_id"`
	EmployeeNo   string `json:"employee_no"`
	TempPassword string `json:"temp_password"`
}

// [自证通过] internal/dto/career.go
