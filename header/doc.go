// Package header renders the C declarations that describe the calibration
// byte layout.
//
// Each row contributes a Tuple (calibration identifier, bit length, group
// name). Rows of one group become a typedef'd struct plus a union that
// overlays the struct with a char buffer of the same size:
//
//	typedef struct s_<group>
//	{
//		char <calibration>[<bytes>];
//		struct s_<group>BYTE<n>
//		{
//			char <bit7>: 1;
//			...
//			char <bit0>: 1;
//		} <group>BYTE<n>;
//
//	} <group>;
//
//	union u_<group>
//	{
//		char buffer[<total bytes>];
//		<group> map;
//	};
//
// Single-bit rows must come in runs whose length is a multiple of eight.
package header
