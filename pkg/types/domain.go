package types

// AgentSpec declares a named agent and the resource it requires.
type AgentSpec struct {
	// Stable identifier for the agent.
	// example: plutus
	ID string `json:"id" yaml:"id" toml:"id" example:"plutus"`
	// Identifier of the resource this agent executes against.
	// example: qwen-14b
	Resource string `json:"resource" yaml:"resource" toml:"resource" example:"qwen-14b"`
	// Optional HTTP endpoint tasks are delivered to.
	// example: http://localhost:9001/task
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" toml:"endpoint,omitempty" example:"http://localhost:9001/task"`
}

// ResourceSpec declares a loadable resource (e.g. a model) and its cost.
type ResourceSpec struct {
	// Stable identifier for the resource.
	// example: qwen-14b
	ID string `json:"id" yaml:"id" toml:"id" example:"qwen-14b"`
	// Abstract cost of keeping the resource loaded, in MB.
	// example: 9000
	CostMB int `json:"cost_mb,omitempty" yaml:"cost_mb,omitempty" toml:"cost_mb,omitempty" example:"9000"`
	// Optional path to the loadable artifact on disk.
	// example: /home/user/models/qwen-14b.Q4_K_M.gguf
	Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty" example:"/home/user/models/qwen-14b.Q4_K_M.gguf"`
}
