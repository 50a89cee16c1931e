package vocabulary

// Base namespaces for plugin metadata graphs.
const (
	// NSLV2 is the LV2 core namespace. Always present in the prefix table.
	NSLV2 = "http://lv2plug.in/ns/lv2core#"

	// NSRDF is the RDF syntax namespace.
	NSRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NSRDFS is the RDF schema namespace.
	NSRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NSXSD is the XML Schema datatype namespace.
	NSXSD = "http://www.w3.org/2001/XMLSchema#"

	// NSDOAP is the Description of a Project namespace (plugin names, maintainers).
	NSDOAP = "http://usefulinc.com/ns/doap#"

	// NSFOAF is the Friend of a Friend namespace (author contact details).
	NSFOAF = "http://xmlns.com/foaf/0.1/"

	// NSDC is the Dublin Core terms namespace.
	NSDC = "http://purl.org/dc/terms/"

	// NSUI is the LV2 UI extension namespace.
	NSUI = "http://lv2plug.in/ns/extensions/ui#"

	// NSEvent is the LV2 event extension namespace.
	NSEvent = "http://lv2plug.in/ns/ext/event#"

	// NSMIDI is the LV2 MIDI extension namespace.
	NSMIDI = "http://lv2plug.in/ns/ext/midi#"

	// NSDynManifest is the LV2 dynamic manifest extension namespace.
	NSDynManifest = "http://lv2plug.in/ns/ext/dynmanifest#"
)

// Plugin and UI classes.
const (
	// ClassPlugin is the root plugin class; every discoverable plugin has
	// an rdf:type assertion naming it or one of its subclasses.
	ClassPlugin = NSLV2 + "Plugin"

	// ClassSpecification marks LV2 specification bundles; they contribute
	// vocabulary, not plugins.
	ClassSpecification = NSLV2 + "Specification"

	// ClassUI is the generic UI class from the UI extension.
	ClassUI = NSUI + "UI"
)

// Port classes. A port's type is the set of these classes it carries.
const (
	PortClassPort    = NSLV2 + "Port"
	PortClassInput   = NSLV2 + "InputPort"
	PortClassOutput  = NSLV2 + "OutputPort"
	PortClassControl = NSLV2 + "ControlPort"
	PortClassAudio   = NSLV2 + "AudioPort"
	PortClassEvent   = NSEvent + "EventPort"

	// EventClassMIDI is the MIDI event type carried by event ports.
	EventClassMIDI = NSMIDI + "MidiEvent"
)

// Core predicates.
const (
	// PredType is rdf:type.
	PredType = NSRDF + "type"

	// PredValue is rdf:value, used for scale point values.
	PredValue = NSRDF + "value"

	// PredSeeAlso is rdfs:seeAlso; manifest files use it to point at the
	// data files holding the rest of a plugin's description.
	PredSeeAlso = NSRDFS + "seeAlso"

	// PredLabel is rdfs:label (class and scale point labels).
	PredLabel = NSRDFS + "label"

	// PredSubClassOf is rdfs:subClassOf, the parent link of the class tree.
	PredSubClassOf = NSRDFS + "subClassOf"

	// PredName is doap:name, a plugin's human-readable name.
	PredName = NSDOAP + "name"

	// PredMaintainer is doap:maintainer, linking a plugin to its author node.
	PredMaintainer = NSDOAP + "maintainer"

	// PredFOAFName, PredFOAFMbox and PredFOAFHomepage describe the author.
	PredFOAFName     = NSFOAF + "name"
	PredFOAFMbox     = NSFOAF + "mbox"
	PredFOAFHomepage = NSFOAF + "homepage"

	// PredReplaces is dc:replaces; a plugin listed as its object is
	// superseded by the subject.
	PredReplaces = NSDC + "replaces"
)

// LV2 core predicates.
const (
	PredPort            = NSLV2 + "port"
	PredBinary          = NSLV2 + "binary"
	PredSymbol          = NSLV2 + "symbol"
	PredPortName        = NSLV2 + "name"
	PredIndex           = NSLV2 + "index"
	PredDefault         = NSLV2 + "default"
	PredMinimum         = NSLV2 + "minimum"
	PredMaximum         = NSLV2 + "maximum"
	PredScalePoint      = NSLV2 + "scalePoint"
	PredPortProperty    = NSLV2 + "portProperty"
	PredReportsLatency  = NSLV2 + "reportsLatency"
	PredRequiredFeature = NSLV2 + "requiredFeature"
	PredOptionalFeature = NSLV2 + "optionalFeature"
)

// UI and event extension predicates.
const (
	// PredUI links a plugin to a UI resource.
	PredUI = NSUI + "ui"

	// PredUIBinary names the shared library implementing a UI.
	PredUIBinary = NSUI + "binary"

	// PredSupportsEvent declares an event type understood by an event port.
	PredSupportsEvent = NSEvent + "supportsEvent"
)
