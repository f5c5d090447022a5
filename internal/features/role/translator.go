package role

import (
	"strings"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
)

// titleRule maps a keyword found in a free-text position title to a canonical
// role. Rules are evaluated in order and the first match wins, so the more
// specific titles ("kế toán trưởng") must precede their prefixes ("kế toán").
type titleRule struct {
	Keyword string
	Role    common_models.Role
}

var titleRules = []titleRule{
	{"kế toán trưởng", common_models.RoleChiefAccountant},
	{"ke toan truong", common_models.RoleChiefAccountant},
	{"kế toán", common_models.RoleAccountant},
	{"ke toan", common_models.RoleAccountant},
	{"pháp chế", common_models.RoleLegal},
	{"phap che", common_models.RoleLegal},
	{"luật", common_models.RoleLegal},
	{"ban lãnh đạo", common_models.RoleLeadership},
	{"lãnh đạo", common_models.RoleLeadership},
	{"lanh dao", common_models.RoleLeadership},
	{"tổng giám đốc", common_models.RoleLeadership},
	{"giám đốc", common_models.RoleLeadership},
	{"giam doc", common_models.RoleLeadership},
	{"trưởng đơn vị", common_models.RoleUnitLeader},
	{"truong don vi", common_models.RoleUnitLeader},
	{"trưởng phòng", common_models.RoleUnitLeader},
	{"truong phong", common_models.RoleUnitLeader},
	{"quản trị", common_models.RoleAdmin},
	{"quan tri", common_models.RoleAdmin},
	{"admin", common_models.RoleAdmin},
	{"kinh doanh", common_models.RoleNVKD},
}

// TranslateTitle normalizes a legacy free-text position title to a canonical
// role code. This is a one-way migration aid for records predating role codes
// (see cmd/migrate-roles); workflow guards consume only the canonical role.
func TranslateTitle(title string) common_models.Role {
	normalized := strings.ToLower(strings.TrimSpace(title))
	for _, rule := range titleRules {
		if strings.Contains(normalized, rule.Keyword) {
			return rule.Role
		}
	}
	return common_models.RoleNVKD
}

// ParseRole validates a stored role code, falling back to NVKD for unknown values.
func ParseRole(code string) common_models.Role {
	switch common_models.Role(code) {
	case common_models.RoleNVKD, common_models.RoleUnitLeader, common_models.RoleAccountant,
		common_models.RoleChiefAccountant, common_models.RoleLegal,
		common_models.RoleLeadership, common_models.RoleAdmin:
		return common_models.Role(code)
	}
	return common_models.RoleNVKD
}
