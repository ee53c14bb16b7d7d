package agenthooks

// Names of the external tools that the guard and reactor key their
// behavior on. Tools are identified by exact name match.
const (
	ToolAskForApproval  = "sync_ask_for_approval"
	ToolModifyCart      = "modify_cart"
	ToolApproveDiscount = "approve_discount"
)

// ToolCall identifies a pending or completed tool invocation: the tool's
// registered name and its argument mapping as produced by the model.
type ToolCall struct {
	Name string
	Args map[string]any
}

// ToolResponse is the mapping an external tool returns. The tools this
// library reacts to report their outcome under a "status" key.
type ToolResponse map[string]any

// Status returns the response's status field, or "" when absent.
func (r ToolResponse) Status() string {
	if r == nil {
		return ""
	}
	s, _ := r["status"].(string)
	return s
}
