package metatag

// ValueSetProvider supplies the closed set of values a tag may take.
type ValueSetProvider interface {
	Labels() []string
}

// StaticValues is a fixed, ordered value set.
type StaticValues []string

func (v StaticValues) Labels() []string { return v }

// Descriptor 元数据标签描述
//   - ID: 全局唯一
//   - Name: 输出时的属性名（如 Schema.org 的 "@type"）
//   - Group: 所属分组（定义 Schema.org 类型的分组 id）
//   - Weight: 组内排序，越小越靠前
type Descriptor struct {
	ID          string
	Label       string
	Description string
	Name        string
	Group       string
	Weight      int
	Type        string
	Secure      bool
	Multiple    bool
	Values      ValueSetProvider
}

// Info is the JSON view of a descriptor.
type Info struct {
	ID            string   `json:"id"`
	Label         string   `json:"label"`
	Description   string   `json:"description"`
	Name          string   `json:"name"`
	Group         string   `json:"group"`
	Weight        int      `json:"weight"`
	Type          string   `json:"type"`
	Secure        bool     `json:"secure"`
	Multiple      bool     `json:"multiple"`
	AllowedValues []string `json:"allowed_values"`
}

func (d Descriptor) Info() Info {
	return Info{
		ID:            d.ID,
		Label:         d.Label,
		Description:   d.Description,
		Name:          d.Name,
		Group:         d.Group,
		Weight:        d.Weight,
		Type:          d.Type,
		Secure:        d.Secure,
		Multiple:      d.Multiple,
		AllowedValues: d.allowed(),
	}
}

func (d Descriptor) allowed() []string {
	if d.Values == nil {
		return nil
	}
	labels := d.Values.Labels()
	out := make([]string, len(labels))
	copy(out, labels)
	return out
}
