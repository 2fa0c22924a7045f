package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"agentd/internal/common/fsutil"
	"agentd/pkg/types"
)

// File is the on-disk registry document: which agents exist, which resource
// each one requires, and what each resource costs.
type File struct {
	Agents    []types.AgentSpec    `json:"agents" yaml:"agents" toml:"agents"`
	Resources []types.ResourceSpec `json:"resources" yaml:"resources" toml:"resources"`
}

// Registry is the validated, read-only agent/resource mapping.
type Registry struct {
	agents    map[string]types.AgentSpec
	resources map[string]types.ResourceSpec
	order     []string // agent ids in declaration order
}

// New validates the raw specs and builds a Registry.
func New(agents []types.AgentSpec, resources []types.ResourceSpec) (*Registry, error) {
	r := &Registry{
		agents:    make(map[string]types.AgentSpec, len(agents)),
		resources: make(map[string]types.ResourceSpec, len(resources)),
	}
	for _, res := range resources {
		if res.ID == "" {
			return nil, fmt.Errorf("resource with empty id")
		}
		if _, dup := r.resources[res.ID]; dup {
			return nil, fmt.Errorf("duplicate resource id: %s", res.ID)
		}
		r.resources[res.ID] = res
	}
	for _, a := range agents {
		if a.ID == "" {
			return nil, fmt.Errorf("agent with empty id")
		}
		if _, dup := r.agents[a.ID]; dup {
			return nil, fmt.Errorf("duplicate agent id: %s", a.ID)
		}
		if _, ok := r.resources[a.Resource]; !ok {
			return nil, fmt.Errorf("agent %s references unknown resource: %s", a.ID, a.Resource)
		}
		r.agents[a.ID] = a
		r.order = append(r.order, a.ID)
	}
	return r, nil
}

// Load reads a registry file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (*Registry, error) {
	base, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(base)
	if err != nil {
		return nil, err
	}
	var f File
	switch ext := strings.ToLower(filepath.Ext(base)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &f); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(b, &f); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &f); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported registry extension: %s", ext)
	}
	return New(f.Agents, f.Resources)
}

// Agent looks up an agent by id.
func (r *Registry) Agent(id string) (types.AgentSpec, bool) {
	a, ok := r.agents[id]
	return a, ok
}

// Resource looks up a resource by id.
func (r *Registry) Resource(id string) (types.ResourceSpec, bool) {
	res, ok := r.resources[id]
	return res, ok
}

// ResourceFor resolves the resource required by an agent.
func (r *Registry) ResourceFor(agentID string) (types.ResourceSpec, bool) {
	a, ok := r.agents[agentID]
	if !ok {
		return types.ResourceSpec{}, false
	}
	return r.Resource(a.Resource)
}

// Agents returns the registered agents in declaration order.
func (r *Registry) Agents() []types.AgentSpec {
	out := make([]types.AgentSpec, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.agents[id])
	}
	return out
}
