package domain

// StagedItem 待发送摘要（digest）中的内容项
// 对应 message_digest 记录引用的 node
type StagedItem struct {
	NodeID int64  `db:"field_node_reference_target_id" json:"node_id"`
	Title  string `db:"title" json:"title"`
}

// Digest staging statuses
const (
	// StagedStatusSent marks records that are ready for the next digest.
	StagedStatusSent = "SENT"
)
