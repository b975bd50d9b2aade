package so

/*
	Sequence Ontology consequence terms, ordered from most to least
	severe. The order is the natural rank used when a single consequence
	has to be picked for a transcript.
*/
var SeverityOrder = []string{
	"transcript_ablation",
	"splice_donor_variant",
	"splice_acceptor_variant",
	"stop_gained",
	"frameshift_variant",
	"stop_lost",
	"start_lost",
	"initiator_codon_variant",
	"inframe_insertion",
	"inframe_deletion",
	"missense_variant",
	"protein_altering_variant",
	"transcript_amplification",
	"splice_region_variant",
	"incomplete_terminal_codon_variant",
	"synonymous_variant",
	"start_retained_variant",
	"stop_retained_variant",
	"coding_sequence_variant",
	"mature_miRNA_variant",
	"5_prime_UTR_variant",
	"3_prime_UTR_variant",
	"non_coding_transcript_exon_variant",
	"non_coding_transcript_variant",
	"intron_variant",
	"NMD_transcript_variant",
	"upstream_gene_variant",
	"downstream_gene_variant",
	"TFBS_ablation",
	"TFBS_amplification",
	"TF_binding_site_variant",
	"regulatory_region_ablation",
	"regulatory_region_amplification",
	"regulatory_region_variant",
	"feature_elongation",
	"feature_truncation",
	"intergenic_variant",
}

// Region annotations recognized by the region_annotations criterion.
var RegionAnnotations = []string{
	"exonic",
	"splicing",
	"ncRNA_exonic",
	"intronic",
	"ncRNA",
	"upstream",
	"5UTR",
	"downstream",
	"3UTR",
	"intergenic",
}

func IsValidTerm(term string) bool {
	for _, t := range SeverityOrder {
		if t == term {
			return true
		}
	}
	return false
}

// SeverityRank returns the position of a consequence term in the
// severity order ; unknown terms rank after every known one.
func SeverityRank(term string) int {
	for i, t := range SeverityOrder {
		if t == term {
			return i
		}
	}
	return len(SeverityOrder)
}
