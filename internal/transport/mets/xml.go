package mets

import "encoding/xml"

// Element paths below never cross a namespace boundary: encoding/xml matches the
// namespace of every element along a "a>b>c" path.

type xmlMets struct {
	XMLName    xml.Name       `xml:"http://www.loc.gov/METS/ mets"`
	DmdSecs    []xmlMdSec     `xml:"http://www.loc.gov/METS/ dmdSec"`
	AmdSecs    []xmlAmdSec    `xml:"http://www.loc.gov/METS/ amdSec"`
	FileGrps   []xmlFileGrp   `xml:"http://www.loc.gov/METS/ fileSec>fileGrp"`
	StructMaps []xmlStructMap `xml:"http://www.loc.gov/METS/ structMap"`
	SmLinks    []xmlSmLink    `xml:"http://www.loc.gov/METS/ structLink>smLink"`
}

type xmlMdSec struct {
	ID     string    `xml:"ID,attr"`
	MdWrap xmlMdWrap `xml:"http://www.loc.gov/METS/ mdWrap"`
}

type xmlAmdSec struct {
	ID       string     `xml:"ID,attr"`
	RightsMD []xmlMdSec `xml:"http://www.loc.gov/METS/ rightsMD"`
}

type xmlMdWrap struct {
	XMLData xmlXMLData `xml:"http://www.loc.gov/METS/ xmlData"`
}

type xmlXMLData struct {
	MODS   *xmlMods `xml:"http://www.loc.gov/mods/v3 mods"`
	Owners []string `xml:"http://dfg-viewer.de/ rights>owner"`
}

type xmlFileGrp struct {
	Use   string    `xml:"USE,attr"`
	Files []xmlFile `xml:"http://www.loc.gov/METS/ file"`
}

type xmlFile struct {
	ID       string      `xml:"ID,attr"`
	MimeType string      `xml:"MIMETYPE,attr"`
	FLocats  []xmlFLocat `xml:"http://www.loc.gov/METS/ FLocat"`
}

type xmlFLocat struct {
	Href string `xml:"http://www.w3.org/1999/xlink href,attr"`
}

type xmlStructMap struct {
	Type string   `xml:"TYPE,attr"`
	Divs []xmlDiv `xml:"http://www.loc.gov/METS/ div"`
}

type xmlDiv struct {
	ID         string    `xml:"ID,attr"`
	Type       string    `xml:"TYPE,attr"`
	Label      string    `xml:"LABEL,attr"`
	OrderLabel string    `xml:"ORDERLABEL,attr"`
	Order      string    `xml:"ORDER,attr"`
	DmdID      string    `xml:"DMDID,attr"`
	Fptrs      []xmlFptr `xml:"http://www.loc.gov/METS/ fptr"`
	Divs       []xmlDiv  `xml:"http://www.loc.gov/METS/ div"`
}

type xmlFptr struct {
	FileID string    `xml:"FILEID,attr"`
	Areas  []xmlArea `xml:"http://www.loc.gov/METS/ area"`
}

type xmlArea struct {
	FileID string `xml:"FILEID,attr"`
}

type xmlSmLink struct {
	From string `xml:"http://www.w3.org/1999/xlink from,attr"`
	To   string `xml:"http://www.w3.org/1999/xlink to,attr"`
}

// --- MODS ---

type xmlMods struct {
	TitleInfos      []xmlTitleInfo  `xml:"http://www.loc.gov/mods/v3 titleInfo"`
	Names           []xmlName       `xml:"http://www.loc.gov/mods/v3 name"`
	OriginInfos     []xmlOriginInfo `xml:"http://www.loc.gov/mods/v3 originInfo"`
	Languages       []string        `xml:"http://www.loc.gov/mods/v3 language>languageTerm"`
	Classifications []string        `xml:"http://www.loc.gov/mods/v3 classification"`
	Genres          []string        `xml:"http://www.loc.gov/mods/v3 genre"`
	RecordIDs       []string        `xml:"http://www.loc.gov/mods/v3 recordInfo>recordIdentifier"`
}

type xmlTitleInfo struct {
	Type     string `xml:"type,attr"`
	NonSort  string `xml:"http://www.loc.gov/mods/v3 nonSort"`
	Title    string `xml:"http://www.loc.gov/mods/v3 title"`
	SubTitle string `xml:"http://www.loc.gov/mods/v3 subTitle"`
}

type xmlName struct {
	DisplayForm string        `xml:"http://www.loc.gov/mods/v3 displayForm"`
	NameParts   []xmlNamePart `xml:"http://www.loc.gov/mods/v3 namePart"`
	RoleTerms   []string      `xml:"http://www.loc.gov/mods/v3 role>roleTerm"`
}

type xmlNamePart struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type xmlOriginInfo struct {
	DatesIssued []string `xml:"http://www.loc.gov/mods/v3 dateIssued"`
	Places      []string `xml:"http://www.loc.gov/mods/v3 place>placeTerm"`
}
