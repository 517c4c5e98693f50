package config

// Built-in values.
const (
	DefaultInputPath   = "AI工具集分类整理_最终版.md"
	DefaultOutputPath  = "obsidian_workshop.html"
	DefaultIcon        = "fas fa-th-large"
	DefaultPlaceholder = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iNTAiIGhlaWdodD0iNTAiIHZpZXdCb3g9IjAgMCA1MCA1MCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iNTAiIGhlaWdodD0iNTAiIGZpbGw9IiMxZjM0NjAiLz48cGF0aCBkPSJNMjUgNEwyNSA0NkwyNSA0eiIgZmlsbD0iI2U5NDU2MCIgc3Ryb2tlPSIjZmZmZmZmIiBzdHJva2Utd2lkdGg9IjIiLz48L3N2Zz4="
	DefaultStripPrefix = "hysaitool/"
	DefaultScrapeURL   = "https://www.qijishow.com/down/index.html"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout     = "10s"
	DefaultIconDir     = "images"
	DefaultScrapeOut   = "design_tools.md"
	DefaultScrapeTitle = "设计软件工具"
	DefaultAuditPrefix = "images/"
	DefaultLogLevel    = "info"
)

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{Path: DefaultInputPath},
		Output: OutputConfig{Path: DefaultOutputPath},
		Parser: ParserConfig{
			Sentinels:   []string{"---", "AI工具集分类整理"},
			HeaderNames: []string{"工具名称"},
		},
		Categories: CategoriesConfig{
			Icons: []IconRule{
				{Match: "热门推荐工具", Icon: "fas fa-fire"},
				{Match: "AI办公工具", Icon: "fas fa-briefcase"},
				{Match: "AI效率提升", Icon: "fas fa-rocket"},
				{Match: "AI编程工具", Icon: "fas fa-code"},
				{Match: "AI写作工具", Icon: "fas fa-pen-fancy"},
				{Match: "AI图像工具", Icon: "fas fa-image"},
				{Match: "其他工具", Icon: "fas fa-tools"},
				{Match: "AI搜索工具", Icon: "fas fa-search"},
				{Match: "AI教育工具", Icon: "fas fa-graduation-cap"},
				{Match: "AI模型", Icon: "fas fa-brain"},
				{Match: "AI评测工具", Icon: "fas fa-chart-line"},
				{Match: "AI提示词工具", Icon: "fas fa-keyboard"},
			},
			Default: DefaultIcon,
		},
		Icons:  IconsConfig{Placeholder: DefaultPlaceholder, StripPrefix: DefaultStripPrefix},
		Labels: LabelsConfig{NavTitle: "AI工具分类", AllLabel: "全部工具", Button: "访问工具"},
		Patch:  PatchConfig{NavClass: "sidebar-nav", SectionClass: "category-section", EndTag: "main"},
		Assets: AssetsConfig{TemplateSet: "default"},
		Scrape: ScrapeConfig{
			URL:       DefaultScrapeURL,
			UserAgent: DefaultUserAgent,
			Timeout:   DefaultTimeout,
			IconDir:   DefaultIconDir,
			Output:    DefaultScrapeOut,
			Title:     DefaultScrapeTitle,
			Categories: []KeywordRule{
				{Name: "图形设计", Keywords: []string{"Photoshop", "Illustrator", "GIMP", "CorelDRAW", "Inkscape"}},
				{Name: "UI设计", Keywords: []string{"Figma", "Sketch", "Adobe XD", "Axure RP", "InVision"}},
				{Name: "3D设计", Keywords: []string{"Blender", "3ds Max", "Maya", "Cinema 4D", "ZBrush"}},
				{Name: "视频编辑", Keywords: []string{"Premiere Pro", "DaVinci Resolve", "Final Cut Pro", "After Effects", "Vegas Pro"}},
				{Name: "音频处理", Keywords: []string{"Audition", "Audacity", "Logic Pro", "FL Studio", "Ableton Live"}},
				{Name: "原型设计", Keywords: []string{"Figma", "Sketch", "Adobe XD", "Axure RP", "Protopie"}},
				{Name: "矢量图形", Keywords: []string{"Illustrator", "CorelDRAW", "Inkscape", "Affinity Designer", "Sketch"}},
			},
		},
		Audit: AuditConfig{Prefix: DefaultAuditPrefix},
		Log:   LogConfig{Level: DefaultLogLevel},
	}
}

// fillDefaults sets every empty field of c to its value in def.
// Lists are replaced as a whole, never merged.
func (c *Config) fillDefaults(def *Config) {
	setString(&c.Input.Path, def.Input.Path)
	setString(&c.Output.Path, def.Output.Path)

	if c.Parser.Sentinels == nil {
		c.Parser.Sentinels = def.Parser.Sentinels
	}
	if c.Parser.HeaderNames == nil {
		c.Parser.HeaderNames = def.Parser.HeaderNames
	}
	if c.Categories.Icons == nil {
		c.Categories.Icons = def.Categories.Icons
	}
	setString(&c.Categories.Default, def.Categories.Default)

	setString(&c.Icons.Placeholder, def.Icons.Placeholder)
	setString(&c.Icons.StripPrefix, def.Icons.StripPrefix)

	setString(&c.Labels.NavTitle, def.Labels.NavTitle)
	setString(&c.Labels.AllLabel, def.Labels.AllLabel)
	setString(&c.Labels.Button, def.Labels.Button)

	setString(&c.Patch.NavClass, def.Patch.NavClass)
	setString(&c.Patch.SectionClass, def.Patch.SectionClass)
	setString(&c.Patch.EndTag, def.Patch.EndTag)

	setString(&c.Assets.TemplateSet, def.Assets.TemplateSet)

	setString(&c.Scrape.URL, def.Scrape.URL)
	setString(&c.Scrape.UserAgent, def.Scrape.UserAgent)
	setString(&c.Scrape.Timeout, def.Scrape.Timeout)
	setString(&c.Scrape.IconDir, def.Scrape.IconDir)
	setString(&c.Scrape.Output, def.Scrape.Output)
	setString(&c.Scrape.Title, def.Scrape.Title)
	if c.Scrape.Categories == nil {
		c.Scrape.Categories = def.Scrape.Categories
	}

	setString(&c.Audit.Prefix, def.Audit.Prefix)
	setString(&c.Log.Level, def.Log.Level)
}

func setString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
