package admin

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/1983adrian/adimarketplace-sub002/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetAdminRolesPayload struct {
	Roles []string `json:"roles"`
}

func roleFromParam(c *gin.Context) string {
	role, err := url.PathUnescape(c.Param("role"))
	if err != nil {
		return strings.TrimSpace(c.Param("role"))
	}
	return strings.TrimSpace(role)
}

// GetAuthzMe returns the caller's roles and effective policies.
func (h *Handler) GetAuthzMe(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}

	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load roles", err)
		return
	}
	policies, err := h.AuthzService.GetAdminPolicies(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load policies", err)
		return
	}

	isSuper := false
	if value, exists := c.Get("admin_is_super"); exists {
		if flag, typeOK := value.(bool); typeOK {
			isSuper = flag
		}
	}

	response.Success(c, gin.H{
		"admin_id": adminID,
		"is_super": isSuper,
		"roles":    roles,
		"policies": policies,
	})
}

// ListAuthzRoles lists all role names.
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list roles", err)
		return
	}
	response.Success(c, roles)
}

// ListAuthzAdmins lists administrators with their roles.
func (h *Handler) ListAuthzAdmins(c *gin.Context) {
	admins, err := h.AdminRepo.List()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list admins", err)
		return
	}

	items := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		roles, roleErr := h.AuthzService.GetAdminRoles(admin.ID)
		if roleErr != nil {
			respondError(c, response.CodeInternal, "failed to load roles", roleErr)
			return
		}
		items = append(items, gin.H{
			"id":            admin.ID,
			"username":      admin.Username,
			"is_super":      admin.IsSuper,
			"last_login_at": admin.LastLoginAt,
			"created_at":    admin.CreatedAt,
			"roles":         roles,
		})
	}

	response.Success(c, items)
}

// CreateAuthzRole creates a role.
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "role name is invalid", err)
		return
	}

	requestLog(c).Infow("authz_role_created", "role", role)
	response.Success(c, gin.H{"role": role})
}

// DeleteAuthzRole deletes a role and its policies.
func (h *Handler) DeleteAuthzRole(c *gin.Context) {
	role := roleFromParam(c)
	if role == "" {
		respondError(c, response.CodeBadRequest, "role name is invalid", nil)
		return
	}

	if err := h.AuthzService.DeleteRole(role); err != nil {
		respondError(c, response.CodeBadRequest, "failed to delete role", err)
		return
	}

	requestLog(c).Infow("authz_role_deleted", "role", role)
	response.Success(c, gin.H{"deleted": true})
}

// GetAuthzRolePolicies lists a role's policies.
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := roleFromParam(c)
	if role == "" {
		respondError(c, response.CodeBadRequest, "role name is invalid", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load policies", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy grants one policy to a role.
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "failed to grant policy", err)
		return
	}

	requestLog(c).Infow("authz_policy_granted",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, gin.H{"granted": true})
}

// RevokeAuthzPolicy revokes one policy from a role.
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "failed to revoke policy", err)
		return
	}

	requestLog(c).Infow("authz_policy_revoked",
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, gin.H{"revoked": true})
}

// GetAuthzAdminRoles lists one administrator's roles.
func (h *Handler) GetAuthzAdminRoles(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "admin id is invalid", nil)
		return
	}

	roles, rolesErr := h.AuthzService.GetAdminRoles(uint(adminID))
	if rolesErr != nil {
		respondError(c, response.CodeInternal, "failed to load roles", rolesErr)
		return
	}
	response.Success(c, roles)
}

// SetAuthzAdminRoles replaces one administrator's role set.
func (h *Handler) SetAuthzAdminRoles(c *gin.Context) {
	adminID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || adminID == 0 {
		respondError(c, response.CodeBadRequest, "admin id is invalid", nil)
		return
	}

	var req authzSetAdminRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	admin, adminErr := h.AdminRepo.GetByID(uint(adminID))
	if adminErr != nil || admin == nil {
		respondError(c, response.CodeNotFound, "admin not found", adminErr)
		return
	}

	if err := h.AuthzService.SetAdminRoles(uint(adminID), req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "failed to set roles", err)
		return
	}

	requestLog(c).Infow("authz_admin_roles_set",
		"admin_id", adminID,
		"roles", req.Roles,
	)
	response.Success(c, gin.H{"updated": true})
}
