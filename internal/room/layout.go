package room

// Layout holds the tunable constants of the room generator. The numbers are
// tuned by eye; none of them is a compatibility contract.
type Layout struct {
	WallThickness float32 `yaml:"wall_thickness"`
	Height        float32 `yaml:"height"`

	LobbyWidth        float32 `yaml:"lobby_width"`
	LobbyLength       float32 `yaml:"lobby_length"`
	LobbyDoorWidth    float32 `yaml:"lobby_door_width"`
	LobbyDoorsPerWall int     `yaml:"lobby_doors_per_wall"`

	GalleryMinWidth  float32 `yaml:"gallery_min_width"`
	GalleryMaxWidth  float32 `yaml:"gallery_max_width"`
	GalleryMinLength float32 `yaml:"gallery_min_length"`
	GalleryMaxLength float32 `yaml:"gallery_max_length"`
	GridStep         float32 `yaml:"grid_step"`

	DoorHeight      float32 `yaml:"door_height"`
	DoorGap         float32 `yaml:"door_gap"`
	MinDoorWidth    float32 `yaml:"min_door_width"`
	MaxDoorWidth    float32 `yaml:"max_door_width"`
	CornerMargin    float32 `yaml:"corner_margin"`
	CornerDoorWidth float32 `yaml:"corner_door_width"`

	NorthDoorMinWidth float32 `yaml:"north_door_min_width"`
	NorthDoorMaxWidth float32 `yaml:"north_door_max_width"`
	MaxNorthDoors     int     `yaml:"max_north_doors"`

	PanelWidth   float32 `yaml:"panel_width"`
	PhotoColumns int     `yaml:"photo_columns"`
	PhotoRows    int     `yaml:"photo_rows"`
	PhotoWidth   float32 `yaml:"photo_width"`
	PhotoHeight  float32 `yaml:"photo_height"`
	PhotoGap     float32 `yaml:"photo_gap"`

	ColumnWidth   float32 `yaml:"column_width"`
	ColumnRadius  float32 `yaml:"column_radius"`
	BenchWidth    float32 `yaml:"bench_width"`
	BenchDepth    float32 `yaml:"bench_depth"`
	BenchHeight   float32 `yaml:"bench_height"`
	PlanterRadius float32 `yaml:"planter_radius"`
	PickableSize  float32 `yaml:"pickable_size"`
}

// DefaultLayout returns the stock generator constants.
func DefaultLayout() Layout {
	return Layout{
		WallThickness: 0.3,
		Height:        6,

		LobbyWidth:        20,
		LobbyLength:       36,
		LobbyDoorWidth:    2.2,
		LobbyDoorsPerWall: 6,

		GalleryMinWidth:  14,
		GalleryMaxWidth:  24,
		GalleryMinLength: 12,
		GalleryMaxLength: 30,
		GridStep:         2,

		DoorHeight:      2.8,
		DoorGap:         0.6,
		MinDoorWidth:    0.6,
		MaxDoorWidth:    3.0,
		CornerMargin:    1.2,
		CornerDoorWidth: 2.0,

		NorthDoorMinWidth: 0.9,
		NorthDoorMaxWidth: 2.0,
		MaxNorthDoors:     16,

		PanelWidth:   6,
		PhotoColumns: 3,
		PhotoRows:    2,
		PhotoWidth:   1.6,
		PhotoHeight:  1.2,
		PhotoGap:     0.4,

		ColumnWidth:   2.4,
		ColumnRadius:  0.4,
		BenchWidth:    2.4,
		BenchDepth:    0.8,
		BenchHeight:   0.45,
		PlanterRadius: 0.45,
		PickableSize:  0.3,
	}
}

// withDefaults replaces every non-positive field with its default so a
// partially filled Layout can never produce degenerate geometry.
func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	f := func(v *float32, def float32) {
		if !(*v > 0) {
			*v = def
		}
	}
	i := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	f(&l.WallThickness, d.WallThickness)
	f(&l.Height, d.Height)
	f(&l.LobbyWidth, d.LobbyWidth)
	f(&l.LobbyLength, d.LobbyLength)
	f(&l.LobbyDoorWidth, d.LobbyDoorWidth)
	i(&l.LobbyDoorsPerWall, d.LobbyDoorsPerWall)
	f(&l.GalleryMinWidth, d.GalleryMinWidth)
	f(&l.GalleryMaxWidth, d.GalleryMaxWidth)
	f(&l.GalleryMinLength, d.GalleryMinLength)
	f(&l.GalleryMaxLength, d.GalleryMaxLength)
	f(&l.GridStep, d.GridStep)
	f(&l.DoorHeight, d.DoorHeight)
	f(&l.DoorGap, d.DoorGap)
	f(&l.MinDoorWidth, d.MinDoorWidth)
	f(&l.MaxDoorWidth, d.MaxDoorWidth)
	f(&l.CornerMargin, d.CornerMargin)
	f(&l.CornerDoorWidth, d.CornerDoorWidth)
	f(&l.NorthDoorMinWidth, d.NorthDoorMinWidth)
	f(&l.NorthDoorMaxWidth, d.NorthDoorMaxWidth)
	i(&l.MaxNorthDoors, d.MaxNorthDoors)
	f(&l.PanelWidth, d.PanelWidth)
	i(&l.PhotoColumns, d.PhotoColumns)
	i(&l.PhotoRows, d.PhotoRows)
	f(&l.PhotoWidth, d.PhotoWidth)
	f(&l.PhotoHeight, d.PhotoHeight)
	f(&l.PhotoGap, d.PhotoGap)
	f(&l.ColumnWidth, d.ColumnWidth)
	f(&l.ColumnRadius, d.ColumnRadius)
	f(&l.BenchWidth, d.BenchWidth)
	f(&l.BenchDepth, d.BenchDepth)
	f(&l.BenchHeight, d.BenchHeight)
	f(&l.PlanterRadius, d.PlanterRadius)
	f(&l.PickableSize, d.PickableSize)

	if l.MaxDoorWidth < l.MinDoorWidth {
		l.MaxDoorWidth = l.MinDoorWidth
	}
	if l.NorthDoorMaxWidth < l.NorthDoorMinWidth {
		l.NorthDoorMaxWidth = l.NorthDoorMinWidth
	}
	if l.GalleryMaxWidth < l.GalleryMinWidth {
		l.GalleryMaxWidth = l.GalleryMinWidth
	}
	if l.GalleryMaxLength < l.GalleryMinLength {
		l.GalleryMaxLength = l.GalleryMinLength
	}
	if l.DoorHeight > l.Height {
		l.DoorHeight = l.Height
	}
	return l
}

// minGalleryLength is the shortest gallery whose side walls still fit the
// centre panel between the two corner doors.
func (l Layout) minGalleryLength() float32 {
	return 2*(l.CornerMargin+l.CornerDoorWidth+l.DoorGap) + l.PanelWidth
}

// northSpan is the part of the north wall between the two corner doors.
func (l Layout) northSpan(wallWidth float32) float32 {
	return wallWidth - 2*(l.CornerMargin+l.CornerDoorWidth+l.DoorGap)
}
