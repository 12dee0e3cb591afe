package generator

import "github.com/toyz/decoratable/internal/models"

// Extract returns the method requirements of a validated contract in
// declaration order. Members that are not methods are skipped; Validate has
// already rejected every contract where that would drop behavior.
func Extract(decl *models.ContractDeclaration) []models.MethodRequirement {
	methods := make([]models.MethodRequirement, 0, len(decl.Members))
	for _, member := range decl.Members {
		if member.Kind != models.MemberMethod || member.Method == nil {
			continue
		}
		method := *member.Method
		method.Parameters = append([]models.Parameter(nil), member.Method.Parameters...)
		methods = append(methods, method)
	}
	return methods
}
