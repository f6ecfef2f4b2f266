package doc

//go:generate go tool go-enum --names --marshal

// Type of document node.
// ENUM(doc, paragraph, heading, blockquote, bullet_list, ordered_list, list_item, figure, figure_caption, table, table_row, table_cell, horizontal_rule, text, hard_break, image, footnote)
type NodeKind int

// Type of mark attached to inline content.
// ENUM(insertion, deletion, comment, strong, em, link, underline)
type MarkKind int

type nodeSpec struct {
	inline    bool
	leaf      bool
	textblock bool
}

// nodeSpecs classifies node kinds, everything absent is a block container.
var nodeSpecs = map[NodeKind]nodeSpec{
	NodeKindParagraph:      {textblock: true},
	NodeKindHeading:        {textblock: true},
	NodeKindFigureCaption:  {textblock: true},
	NodeKindHorizontalRule: {leaf: true},
	NodeKindText:           {inline: true, leaf: true},
	NodeKindHardBreak:      {inline: true, leaf: true},
	NodeKindImage:          {inline: true, leaf: true},
	NodeKindFootnote:       {inline: true, leaf: true},
}
