package fixtures

import "strings"

// minimal is a small but complete mzTab-M 2.0 document: every mandatory
// metadata key, one row per section and one optional column.
var minimal = []string{
	"MTD\tmzTab-version\t2.0.0-M",
	"MTD\tmzTab-ID\tMTBLS263",
	"MTD\ttitle\tMinimal glucose example",
	"MTD\tdescription\tA minimal mzTab-M document with one run, assay and study variable",
	"MTD\tsample_processing[1]\t[MSIO, MSIO:0000148, high performance liquid chromatography, ]",
	"MTD\tinstrument[1]-name\t[MS, MS:1000449, LTQ Orbitrap, ]",
	"MTD\tinstrument[1]-source\t[MS, MS:1000073, electrospray ionization, ]",
	"MTD\tinstrument[1]-analyzer[1]\t[MS, MS:1000484, orbitrap, ]",
	"MTD\tinstrument[1]-detector\t[MS, MS:1000624, inductive detector, ]",
	"MTD\tsoftware[1]\t[MS, MS:1002879, Progenesis QI, 3.0]",
	"MTD\tsoftware[1]-setting[1]\tFragment tolerance = 0.1 Da",
	"MTD\tpublication[1]\tpubmed:21063943|doi:10.1007/978-1-60761-987-1_6",
	"MTD\tcontact[1]-name\tJane Doe",
	"MTD\tcontact[1]-affiliation\tExample Institute",
	"MTD\tcontact[1]-email\tjane.doe@example.org",
	"MTD\turi[1]\thttps://www.ebi.ac.uk/metabolights/MTBLS263",
	"MTD\tquantification_method\t[MS, MS:1001834, LC-MS label-free quantitation analysis, ]",
	"MTD\tstudy_variable[1]\tcontrol",
	"MTD\tstudy_variable[1]-assay_refs\tassay[1]",
	"MTD\tstudy_variable[1]-average_function\t[MS, MS:1002883, median, ]",
	"MTD\tstudy_variable[1]-variation_function\t[MS, MS:1002885, standard error, ]",
	"MTD\tstudy_variable[1]-description\tControl group",
	"MTD\tms_run[1]-location\tfile:///data/run1.mzML",
	"MTD\tms_run[1]-instrument_ref\tinstrument[1]",
	"MTD\tms_run[1]-format\t[MS, MS:1000584, mzML file, ]",
	"MTD\tms_run[1]-id_format\t[MS, MS:1000530, mzML unique identifier, ]",
	"MTD\tms_run[1]-fragmentation_method[1]\t[MS, MS:1000133, CID, ]",
	"MTD\tms_run[1]-scan_polarity[1]\t[MS, MS:1000130, positive scan, ]",
	"MTD\tms_run[1]-hash\tde9f2c7fd25e1b3afad3e85a0bd17d9b100db4b3",
	"MTD\tms_run[1]-hash_method\t[MS, MS:1000569, SHA-1, ]",
	"MTD\tsample[1]\thealthy_1",
	"MTD\tsample[1]-species[1]\t[NCBITaxon, NCBITaxon:9606, Homo sapiens (Human), ]",
	"MTD\tsample[1]-description\tHealthy control",
	"MTD\tassay[1]\tassay_1",
	"MTD\tassay[1]-sample_ref\tsample[1]",
	"MTD\tassay[1]-ms_run_ref\tms_run[1]",
	"MTD\tcv[1]-label\tMS",
	"MTD\tcv[1]-full_name\tPSI-MS controlled vocabulary",
	"MTD\tcv[1]-version\t4.1.138",
	"MTD\tcv[1]-uri\thttps://raw.githubusercontent.com/HUPO-PSI/psi-ms-CV/master/psi-ms.obo",
	"MTD\tcv[2]-label\tNCBITaxon",
	"MTD\tcv[2]-full_name\tNCBI organismal classification",
	"MTD\tcv[2]-version\t2023-06-20",
	"MTD\tcv[2]-uri\thttp://purl.obolibrary.org/obo/ncbitaxon.owl",
	"MTD\tcv[3]-label\tPRIDE",
	"MTD\tcv[3]-full_name\tPRIDE PRoteomics IDEntifications database controlled vocabulary",
	"MTD\tcv[3]-version\t16:10:2023 11:38",
	"MTD\tcv[3]-uri\thttps://www.ebi.ac.uk/ols/ontologies/pride",
	"MTD\tcv[4]-label\tUO",
	"MTD\tcv[4]-full_name\tUnits of measurement ontology",
	"MTD\tcv[4]-version\t2023-05-25",
	"MTD\tcv[4]-uri\thttp://purl.obolibrary.org/obo/uo.owl",
	"MTD\tcv[5]-label\tMIRIAM",
	"MTD\tcv[5]-full_name\tMinimal information required in the annotation of models",
	"MTD\tcv[5]-version\t2023-01-01",
	"MTD\tcv[5]-uri\thttps://identifiers.org",
	"MTD\tcv[6]-label\tMSIO",
	"MTD\tcv[6]-full_name\tMetabolomics standards initiative ontology",
	"MTD\tcv[6]-version\t1.0.1",
	"MTD\tcv[6]-uri\thttp://purl.obolibrary.org/obo/msio.owl",
	"MTD\tdatabase[1]\t[MIRIAM, MIR:00100079, HMDB, ]",
	"MTD\tdatabase[1]-prefix\thmdb",
	"MTD\tdatabase[1]-version\t5.0",
	"MTD\tdatabase[1]-uri\thttp://www.hmdb.ca/",
	"MTD\tsmall_molecule-quantification_unit\t[PRIDE, PRIDE:0000330, Arbitrary quantification unit, ]",
	"MTD\tsmall_molecule_feature-quantification_unit\t[PRIDE, PRIDE:0000330, Arbitrary quantification unit, ]",
	"MTD\tsmall_molecule-identification_reliability\t[MS, MS:1002896, compound identification confidence level, ]",
	"MTD\tid_confidence_measure[1]\t[MS, MS:1002888, small molecule confidence measure, ]",
	"MTD\tcolunit-small_molecule\ttheoretical_neutral_mass=[UO, UO:0000221, dalton, ]",
	"",
	"COM\tglucose only",
	"SMH\tSML_ID\tSMF_ID_REFS\tdatabase_identifier\tchemical_formula\tsmiles\tinchi\tchemical_name\turi\ttheoretical_neutral_mass\tadduct_ions\treliability\tbest_id_confidence_measure\tbest_id_confidence_value\tabundance_assay[1]\tabundance_study_variable[1]\tabundance_variation_study_variable[1]\topt_global_note",
	"SML\t1\t1\thmdb:HMDB0000122\tC6H12O6\tnull\tnull\tD-Glucose\thttp://www.hmdb.ca/metabolites/HMDB0000122\t180.0634\t[M+H]1+\t2\t[MS, MS:1002889, rank, ]\t0.95\t1.5e6\t1.5e6\t0.1\tchecked",
	"",
	"SFH\tSMF_ID\tSME_ID_REFS\tSME_ID_REF_ambiguity_code\tadduct_ion\tisotopomer\texp_mass_to_charge\tcharge\tretention_time_in_seconds\tretention_time_in_seconds_start\tretention_time_in_seconds_end\tabundance_assay[1]",
	"SMF\t1\t1\tnull\t[M+H]1+\tnull\t181.0707\t1\t120.5\t118.0\t123.0\t1.5e6",
	"",
	"SEH\tSME_ID\tevidence_input_id\tdatabase_identifier\tchemical_formula\tsmiles\tinchi\tchemical_name\turi\tderivatized_form\tadduct_ion\texp_mass_to_charge\tcharge\ttheoretical_mass_to_charge\tspectra_ref\tidentification_method\tms_level\tid_confidence_measure[1]\trank",
	"SME\t1\tfeature_1\thmdb:HMDB0000122\tC6H12O6\tnull\tnull\tD-Glucose\tnull\tnull\t[M+H]1+\t181.0707\t1\t181.0707\tms_run[1]:index=5\t[MS, MS:1001477, SpectraST, ]\t[MS, MS:1000511, ms level, 1]\t0.95\t1",
}

// Minimal returns the minimal valid document as text.
func Minimal() string {
	return strings.Join(minimal, "\n") + "\n"
}
