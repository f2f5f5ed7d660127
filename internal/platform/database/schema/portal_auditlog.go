package schema

// PortalAuditLogTable represents the 'portal.auditlog' table
type PortalAuditLogTable struct {
	Table      string
	ID         string
	ActorID    string
	ActorName  string
	Action     string
	EntityType string
	EntityID   string
	Detail     string
	IPAddress  string
	RequestID  string
	CreatedAt  string
}

var PortalAuditLog = PortalAuditLogTable{
	Table:      "portal.auditlog",
	ID:         "id",
	ActorID:    "actorid",
	ActorName:  "actorname",
	Action:     "action",
	EntityType: "entitytype",
	EntityID:   "entityid",
	Detail:     "detail",
	IPAddress:  "ipaddress",
	RequestID:  "requestid",
	CreatedAt:  "createdat",
}
